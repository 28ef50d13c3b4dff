package memory

import (
	"context"
	"sync"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// Exporter keeps the last exported table in memory.
type Exporter struct {
	mu      sync.Mutex
	items   []core.Record
	exports int
	err     error
}

func New() *Exporter {
	return &Exporter{}
}

// FailWith makes subsequent exports return err.
func (e *Exporter) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// Export replaces the stored table with a copy of records.
func (e *Exporter) Export(_ context.Context, records []core.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.items = append([]core.Record(nil), records...)
	e.exports++
	return nil
}

// Records returns a copy of the last exported table.
func (e *Exporter) Records() []core.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.Record(nil), e.items...)
}

// Exports returns how many exports succeeded.
func (e *Exporter) Exports() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exports
}
