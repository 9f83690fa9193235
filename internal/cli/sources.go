package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technical-communicator/central-florida-events/internal/scraper"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured event sources",
		Run: func(cmd *cobra.Command, args []string) {
			printSources(cmd)
		},
	}
}

func printSources(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configured sources:")
	for _, source := range scraper.Sources() {
		category := string(source.Category)
		if category == "" {
			category = "inferred"
		}
		fmt.Fprintf(w, "  %-20s %s (%d page(s), category: %s)\n",
			source.Key, source.Name, len(source.Pages), category)
	}
}
