package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/technical-communicator/central-florida-events/internal/config"
	"github.com/technical-communicator/central-florida-events/internal/fetch"
	"github.com/technical-communicator/central-florida-events/internal/logger"
	"github.com/technical-communicator/central-florida-events/internal/normalize"
	"github.com/technical-communicator/central-florida-events/internal/output"
	"github.com/technical-communicator/central-florida-events/internal/pipeline"
	"github.com/technical-communicator/central-florida-events/internal/scraper"
)

var (
	flagOutput    string
	flagJSOutput  string
	flagCSVOutput string
	flagList      bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <source|all>",
		Short: "Scrape the named source (or all sources) and write events",
		Long: `Scrape one configured source, or every source with 'all'. Sources run
sequentially in registry order. Records missing a name or a parseable
date are dropped and counted; a run that finds zero events still
succeeds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "JSON output path (default from config)")
	cmd.Flags().StringVar(&flagJSOutput, "js-output", "", "JavaScript module output path")
	cmd.Flags().StringVar(&flagCSVOutput, "csv-output", "", "CSV output path")
	cmd.Flags().BoolVar(&flagList, "list", false, "list configured sources and exit without fetching")

	cmd.Flags().String("profile", "", "price threshold profile: standard or classic")
	cmd.Flags().Int("base-id", 0, "first event id of the run")
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("base_id", cmd.Flags().Lookup("base-id"))

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	if flagList {
		printSources(cmd)
		return nil
	}

	sources, err := resolveSources(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	profile, _ := normalize.ProfileByName(cfg.Profile)

	fetcher := fetch.New(fetch.Options{
		Timeout:           time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Burst:             1,
		MaxRetries:        uint64(cfg.Fetch.MaxRetries),
		RespectRobots:     cfg.Fetch.RespectRobots,
	})

	p := pipeline.New(fetcher, pipeline.Options{
		Profile: profile,
		BaseID:  cfg.BaseID,
	})

	result, err := p.Run(cmd.Context(), sources)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	generatedAt := time.Now().UTC().Format(time.RFC3339)

	jsonPath := flagOutput
	if jsonPath == "" {
		jsonPath = cfg.Output.JSONPath
	}
	jsPath := flagJSOutput
	if jsPath == "" {
		jsPath = cfg.Output.ModulePath
	}
	csvPath := flagCSVOutput
	if csvPath == "" {
		csvPath = cfg.Output.CSVPath
	}

	if jsonPath != "" {
		if err := writeFile(jsonPath, func(f *os.File) error {
			return output.WriteJSON(f, result.Events, generatedAt)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", jsonPath)
	}
	if jsPath != "" {
		if err := writeFile(jsPath, func(f *os.File) error {
			return output.WriteModule(f, result.Events, generatedAt)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", jsPath)
	}
	if csvPath != "" {
		if err := writeFile(csvPath, func(f *os.File) error {
			return output.WriteCSV(f, result.Events)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", csvPath)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	output.WriteSummary(cmd.OutOrStdout(), result.Stats)

	if verbose {
		snapshot, err := json.MarshalIndent(logger.GetCountersSnapshot(), "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stderr, "Run counters:\n%s\n", snapshot)
		}
	}

	return nil
}

// resolveSources maps the run arguments to registry entries. "all" selects
// every source; any unknown name is an error before fetching starts.
func resolveSources(args []string) ([]scraper.Source, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		return scraper.Sources(), nil
	}

	sources := make([]scraper.Source, 0, len(args))
	for _, arg := range args {
		source, ok := scraper.Lookup(arg)
		if !ok {
			return nil, fmt.Errorf("unknown source %q (known: %s)",
				arg, strings.Join(scraper.Names(), ", "))
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	return write(f)
}
