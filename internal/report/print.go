package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// Preview writes the first n records as an aligned table with amounts shown
// in millions of US dollars.
func Preview(w io.Writer, records []core.Record, n int) error {
	if n > len(records) {
		n = len(records)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tDate\tRevenue ($M)\t")
	for i, r := range records[:n] {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i, r.Period, money.New(r.Amount*100, money.USD).Display())
	}
	fmt.Fprintf(tw, "(%d of %d records)\t\t\t\n", n, len(records))
	return tw.Flush()
}

// Dump writes every record as "date|amount", one per line.
func Dump(w io.Writer, records []core.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s|%d\n", r.Period, r.Amount); err != nil {
			return err
		}
	}
	return nil
}
