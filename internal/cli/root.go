package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/config"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
)

// RootOptions holds global flags for all commands. Empty values leave the
// environment configuration in place.
type RootOptions struct {
	Database string
	OutDir   string
	URL      string
	Verbose  bool
}

func (o *RootOptions) apply(cfg *config.Config) {
	if o.Database != "" {
		cfg.SQLiteDBPath = o.Database
	}
	if o.OutDir != "" {
		cfg.OutputDir = o.OutDir
	}
	if o.URL != "" {
		cfg.SourceURL = o.URL
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
}

// NewRootCommand creates the root command for the revenue CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Scrape, store and chart Tesla quarterly revenue",
		Long: `Fetches the Tesla revenue page, extracts the quarterly revenue table,
replaces the local SQLite table with it and renders line, yearly bar and
yearly box charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			LoadEnvFile()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $SQLITE_DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.OutDir, "out", "", "chart output directory (default $OUTPUT_DIR)")
	cmd.PersistentFlags().StringVar(&opts.URL, "url", "", "source page URL (default $SOURCE_URL)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentApp)
		logger.Error("Command failed",
			log.NewFields().WithError(err, core.ErrorType(err)).ToSlice()...)
		var rowErr *core.RowError
		if errors.As(err, &rowErr) {
			logger.Error("Offending row", "row", rowErr.Row, "label", rowErr.Label, "value", rowErr.Value)
		}
		return 1
	}
	return 0
}
