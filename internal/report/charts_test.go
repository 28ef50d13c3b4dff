package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(b[:8]), "%s is not a PNG", path)
}

func TestRender_WritesThreeCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	charts, err := NewRenderer(dir, log.Discard()).Render(quarters(), 2023)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, LineChartFile), charts.Line)
	assert.Equal(t, filepath.Join(dir, YearlyChartFile), charts.Yearly)
	assert.Equal(t, filepath.Join(dir, BoxChartFile), charts.Box)
	for _, p := range charts.Paths() {
		assertPNG(t, p)
	}
}

func TestRender_EmptyInputProducesEmptyCharts(t *testing.T) {
	charts, err := NewRenderer(t.TempDir(), log.Discard()).Render(nil, 2023)
	require.NoError(t, err)
	for _, p := range charts.Paths() {
		assertPNG(t, p)
	}
}

func TestRender_AllYearsExcluded(t *testing.T) {
	charts, err := NewRenderer(t.TempDir(), log.Discard()).Render(quarters(), 1990)
	require.NoError(t, err)
	assertPNG(t, charts.Box)
}
