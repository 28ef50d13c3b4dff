package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
)

const (
	LineChartFile   = "revenue_line.png"
	YearlyChartFile = "revenue_yearly.png"
	BoxChartFile    = "revenue_box.png"

	amountLabel = "Revenue (in millions)"
)

// Charts lists the files written by Render.
type Charts struct {
	Line   string
	Yearly string
	Box    string
}

// Paths returns the chart files in render order.
func (c Charts) Paths() []string {
	return []string{c.Line, c.Yearly, c.Box}
}

// Renderer writes the three revenue charts as PNG files.
type Renderer struct {
	dir    string
	width  vg.Length
	height vg.Length
	logger *log.Logger
}

func NewRenderer(dir string, logger *log.Logger) *Renderer {
	return &Renderer{
		dir:    dir,
		width:  10 * vg.Inch,
		height: 5 * vg.Inch,
		logger: logger.WithComponent(log.ComponentReport),
	}
}

// Render draws the quarterly line chart over all records and the yearly bar
// and box charts over years before cutoff. No records yields empty charts.
func (r *Renderer) Render(records []core.Record, cutoff int) (Charts, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return Charts{}, fmt.Errorf("create output directory: %w", err)
	}

	charts := Charts{
		Line:   filepath.Join(r.dir, LineChartFile),
		Yearly: filepath.Join(r.dir, YearlyChartFile),
		Box:    filepath.Join(r.dir, BoxChartFile),
	}

	steps := []struct {
		path string
		draw func() (*plot.Plot, error)
	}{
		{charts.Line, func() (*plot.Plot, error) { return lineChart(Chronological(records)) }},
		{charts.Yearly, func() (*plot.Plot, error) { return barChart(YearlyTotals(records, cutoff)) }},
		{charts.Box, func() (*plot.Plot, error) { return boxChart(YearlyDistribution(records, cutoff)) }},
	}
	for _, s := range steps {
		p, err := s.draw()
		if err != nil {
			return Charts{}, fmt.Errorf("draw %s: %w", filepath.Base(s.path), err)
		}
		if err := p.Save(r.width, r.height, s.path); err != nil {
			return Charts{}, fmt.Errorf("save %s: %w", s.path, err)
		}
		r.logger.Info("Chart written", log.FieldPath, s.path)
	}

	return charts, nil
}

func lineChart(records []core.Record) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Quarterly Revenue Over Time"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = amountLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	if len(records) == 0 {
		return p, nil
	}

	pts := make(plotter.XYs, len(records))
	for i, rec := range records {
		pts[i].X = float64(rec.Period.Unix())
		pts[i].Y = float64(rec.Amount)
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line, points)
	return p, nil
}

func barChart(totals []YearTotal) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Annual Revenue"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = amountLabel

	if len(totals) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(totals))
	names := make([]string, len(totals))
	for i, t := range totals {
		values[i] = float64(t.Total)
		names[i] = strconv.Itoa(t.Year)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

func boxChart(dist []YearSamples) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Quarterly Revenue Distribution by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = amountLabel

	names := make([]string, len(dist))
	for i, ys := range dist {
		values := make(plotter.Values, len(ys.Amounts))
		for j, a := range ys.Amounts {
			values[j] = float64(a)
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), values)
		if err != nil {
			return nil, err
		}
		p.Add(box)
		names[i] = strconv.Itoa(ys.Year)
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}
	return p, nil
}
