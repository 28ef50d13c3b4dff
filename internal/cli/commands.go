package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/amqp"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/config"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/report"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/scrape"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/services"
	gsheet "github.com/frankiemarley/web-scraping-project-tutorial/internal/sheets/google"
)

// NewRunCommand creates the run command.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scrape the source page, replace the stored table and render charts",
		Example: `  revenue run
  revenue run --db ./data/tesla_revenue.db --out ./charts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd, opts, true, func(ctx context.Context, p *services.Pipeline, logger *log.Logger) error {
				sum, err := p.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("Charts written",
					log.FieldRunID, sum.RunID,
					log.FieldRecords, sum.Stored,
					"charts", sum.Charts.Paths())
				return nil
			})
		},
	}
}

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render charts from the stored table without fetching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd, opts, false, func(ctx context.Context, p *services.Pipeline, logger *log.Logger) error {
				charts, err := p.Report(ctx)
				if err != nil {
					return err
				}
				for _, path := range charts.Paths() {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			})
		},
	}
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the stored table as date|amount lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd, opts, false, func(ctx context.Context, p *services.Pipeline, _ *log.Logger) error {
				return p.Dump(ctx)
			})
		},
	}
}

// withPipeline loads configuration, opens the store and builds the pipeline.
// Notification sinks are only connected when sinks is set.
func withPipeline(cmd *cobra.Command, opts *RootOptions, sinks bool, fn func(context.Context, *services.Pipeline, *log.Logger) error) error {
	cfg, err := LoadAndValidateConfig(opts)
	if err != nil {
		return err
	}
	logger := SetupLogger(cfg.LogLevel)

	ctx, cancel := ShutdownContext(cmd.Context(), logger)
	defer cancel()

	store, err := InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	popts := services.Options{
		Fetcher: scrape.New(scrape.Config{
			URL:       cfg.SourceURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
			Retries:   cfg.FetchRetries,
			Backoff:   cfg.FetchBackoff,
		}, logger),
		Store:       store,
		Renderer:    report.NewRenderer(cfg.OutputDir, logger),
		Out:         cmd.OutOrStdout(),
		Logger:      logger,
		Source:      cfg.SourceURL,
		Marker:      cfg.TableMarker,
		PreviewRows: cfg.PreviewRows,
		CutoffYear:  cfg.CutoffYear,
	}

	if sinks {
		if client := connectAMQP(cfg, logger); client != nil {
			defer client.Close()
			popts.Publisher = client
		}
		if exporter := connectSheets(ctx, cfg, logger); exporter != nil {
			popts.Exporter = exporter
		}
	}

	return fn(ctx, services.NewPipeline(popts), logger)
}

func connectAMQP(cfg *config.Config, logger *log.Logger) *amqp.Client {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP disabled - no AMQP_URL provided")
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		return nil
	}
	logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client
}

func connectSheets(ctx context.Context, cfg *config.Config, logger *log.Logger) *gsheet.Client {
	if cfg.GoogleSpreadsheetID == "" {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
		return nil
	}
	client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Warn("Failed to initialize Google Sheets client, continuing without export", "error", err)
		return nil
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return client
}

