package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/amqp"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/report"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/scrape"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/sheets"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/storage"
)

// Publisher announces a refreshed revenue table.
type Publisher interface {
	PublishRevenueRefreshed(ctx context.Context, msg *amqp.RevenueRefreshedMessage) error
}

// Options wires the pipeline stages. Publisher and Exporter are optional.
type Options struct {
	Fetcher     *scrape.Fetcher
	Store       *storage.SQLiteRepository
	Renderer    *report.Renderer
	Publisher   Publisher
	Exporter    sheets.RevenueExporter
	Out         io.Writer
	Logger      *log.Logger
	Source      string
	Marker      string
	PreviewRows int
	CutoffYear  int // 0 means the current year
}

// Summary describes one completed run.
type Summary struct {
	RunID   string
	Scraped int
	Skipped int
	Stored  int
	Cutoff  int
	Charts  report.Charts
}

// Pipeline orchestrates fetch, extract, normalize, store and report.
type Pipeline struct {
	fetcher     *scrape.Fetcher
	store       *storage.SQLiteRepository
	renderer    *report.Renderer
	publisher   Publisher
	exporter    sheets.RevenueExporter
	out         io.Writer
	logger      *log.Logger
	source      string
	marker      string
	previewRows int
	cutoffYear  int

	now   func() time.Time
	newID func() string
}

func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{
		fetcher:     opts.Fetcher,
		store:       opts.Store,
		renderer:    opts.Renderer,
		publisher:   opts.Publisher,
		exporter:    opts.Exporter,
		out:         out,
		logger:      logger.WithComponent(log.ComponentPipeline),
		source:      opts.Source,
		marker:      opts.Marker,
		previewRows: opts.PreviewRows,
		cutoffYear:  opts.CutoffYear,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// Run scrapes the source page, replaces the stored table and renders the
// charts from what was persisted.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: p.newID()}
	logger := p.logger.With(log.FieldRunID, sum.RunID)
	start := p.now()

	body, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetch: %w", err)
	}

	table, err := scrape.Extract(body, p.marker)
	if err != nil {
		return sum, fmt.Errorf("extract: %w", err)
	}
	sum.Skipped = table.Skipped
	logger.InfoContext(ctx, "Table extracted",
		log.FieldMarker, p.marker,
		log.FieldRows, len(table.Rows),
		"skipped", table.Skipped)

	records, err := core.Normalize(table.Rows)
	if err != nil {
		return sum, fmt.Errorf("normalize: %w", err)
	}
	sum.Scraped = len(records)

	if err := report.Preview(p.out, records, p.previewRows); err != nil {
		return sum, fmt.Errorf("preview: %w", err)
	}

	if err := p.store.ReplaceAll(ctx, records); err != nil {
		return sum, fmt.Errorf("store: %w", err)
	}

	stored, err := p.store.ReadAll(ctx)
	if err != nil {
		return sum, fmt.Errorf("read back: %w", err)
	}
	sum.Stored = len(stored)

	if err := report.Dump(p.out, stored); err != nil {
		return sum, fmt.Errorf("dump: %w", err)
	}

	sum.Cutoff = report.Cutoff(p.now(), p.cutoffYear)
	charts, err := p.renderer.Render(stored, sum.Cutoff)
	if err != nil {
		return sum, fmt.Errorf("render: %w", err)
	}
	sum.Charts = charts

	// Downstream consumers are best effort; the table is already persisted.
	var g errgroup.Group
	g.Go(func() error {
		if err := p.publish(ctx, sum.RunID, stored); err != nil {
			logger.ErrorContext(ctx, "Failed to publish refresh message",
				log.NewFields().WithOperation(log.OpPublish).WithError(err, core.ErrorType(err)).ToSlice()...)
		}
		return nil
	})
	g.Go(func() error {
		if err := p.export(ctx, stored); err != nil {
			logger.ErrorContext(ctx, "Failed to export revenue",
				log.NewFields().WithOperation(log.OpExport).WithError(err, core.ErrorType(err)).ToSlice()...)
		}
		return nil
	})
	_ = g.Wait()

	logger.InfoContext(ctx, "Run complete",
		log.FieldRecords, sum.Stored,
		"cutoff", sum.Cutoff,
		log.FieldDuration, p.now().Sub(start).Milliseconds())
	return sum, nil
}

// Report renders the charts from the stored table without touching the network.
func (p *Pipeline) Report(ctx context.Context) (report.Charts, error) {
	records, err := p.store.ReadAll(ctx)
	if err != nil {
		return report.Charts{}, fmt.Errorf("read stored revenue: %w", err)
	}
	charts, err := p.renderer.Render(records, report.Cutoff(p.now(), p.cutoffYear))
	if err != nil {
		return report.Charts{}, fmt.Errorf("render: %w", err)
	}
	p.logger.InfoContext(ctx, "Charts rendered from store", log.FieldRecords, len(records))
	return charts, nil
}

// Dump prints the stored table.
func (p *Pipeline) Dump(ctx context.Context) error {
	records, err := p.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read stored revenue: %w", err)
	}
	return report.Dump(p.out, records)
}

func (p *Pipeline) publish(ctx context.Context, runID string, records []core.Record) error {
	if p.publisher == nil {
		p.logger.DebugContext(ctx, "AMQP publisher not configured, skipping refresh message")
		return nil
	}
	return p.publisher.PublishRevenueRefreshed(ctx, amqp.NewRevenueRefreshedMessage(runID, p.source, records))
}

func (p *Pipeline) export(ctx context.Context, records []core.Record) error {
	if p.exporter == nil {
		p.logger.DebugContext(ctx, "Sheets exporter not configured, skipping export")
		return nil
	}
	return p.exporter.Export(ctx, records)
}
