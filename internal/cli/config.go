package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/technical-communicator/central-florida-events/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the cfl-events configuration file.

Settings resolve in priority order: CLI flags, CFL_EVENTS_* environment
variables, the config file (~/.cfl-events/config.yaml), built-in
defaults.`,
	}

	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long:  `Write the built-in defaults to ~/.cfl-events/config.yaml for editing.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}

			configDir := home + "/.cfl-events"
			configPath := configDir + "/config.yaml"

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s (delete it first to recreate)", configPath)
			}

			if err := os.MkdirAll(configDir, 0755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			f, err := os.Create(configPath)
			if err != nil {
				return fmt.Errorf("creating config file: %w", err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("closing config file: %w", closeErr)
				}
			}()

			header := `# cfl-events configuration
#
# Settings resolve in priority order:
#   1. CLI flags
#   2. Environment variables (CFL_EVENTS_*)
#   3. This file
#   4. Built-in defaults

`
			if _, err := f.WriteString(header); err != nil {
				return fmt.Errorf("writing config header: %w", err)
			}

			yamlData, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("marshaling default config: %w", err)
			}
			if _, err := f.Write(yamlData); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
			return nil
		},
	}
}
