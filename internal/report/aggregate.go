// Package report summarizes persisted revenue records and renders charts.
package report

import (
	"sort"
	"time"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// YearTotal is the summed revenue of one calendar year.
type YearTotal struct {
	Year  int
	Total int64
}

// YearSamples holds every quarterly amount reported in one calendar year.
type YearSamples struct {
	Year    int
	Amounts []int64
}

// Cutoff returns the first excluded year. A positive override wins;
// otherwise the current year is excluded as possibly incomplete.
func Cutoff(now time.Time, override int) int {
	if override > 0 {
		return override
	}
	return now.Year()
}

// YearlyTotals sums amounts per year for years before cutoff, ascending.
func YearlyTotals(records []core.Record, cutoff int) []YearTotal {
	dist := YearlyDistribution(records, cutoff)
	out := make([]YearTotal, len(dist))
	for i, ys := range dist {
		var sum int64
		for _, a := range ys.Amounts {
			sum += a
		}
		out[i] = YearTotal{Year: ys.Year, Total: sum}
	}
	return out
}

// YearlyDistribution groups amounts per year for years before cutoff,
// ascending. Amounts keep record order within a year.
func YearlyDistribution(records []core.Record, cutoff int) []YearSamples {
	byYear := map[int][]int64{}
	for _, r := range records {
		y := r.Period.Year()
		if y >= cutoff {
			continue
		}
		byYear[y] = append(byYear[y], r.Amount)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearSamples, len(years))
	for i, y := range years {
		out[i] = YearSamples{Year: y, Amounts: byYear[y]}
	}
	return out
}

// Chronological returns a copy of records sorted by period.
func Chronological(records []core.Record) []core.Record {
	out := append([]core.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Period.Before(out[j].Period.Time)
	})
	return out
}
