package sheets

import (
	"context"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// Ports for outbound adapters.
type (
	// RevenueExporter mirrors the persisted revenue table somewhere else.
	// Each call replaces whatever a previous call exported.
	RevenueExporter interface {
		Export(ctx context.Context, records []core.Record) error
	}
)
