package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// Table is the outcome of extracting one revenue table.
type Table struct {
	Rows    []core.RawRow
	Skipped int // data rows without exactly two cells
}

// Parse builds a navigable document from HTML text.
func Parse(body string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: html: %v", core.ErrParse, err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// FindTable returns the first table whose text contains marker.
func FindTable(doc *goquery.Document, marker string) (*goquery.Selection, bool) {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), marker) {
			found = s
			return false
		}
		return true
	})
	return found, found != nil
}

// ExtractRows skips the header row and keeps every row with exactly two
// cells as a trimmed (label, value) pair.
func ExtractRows(table *goquery.Selection) Table {
	var out Table
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() != 2 {
			out.Skipped++
			return
		}
		out.Rows = append(out.Rows, core.RawRow{
			Row:   i + 1,
			Label: strings.TrimSpace(cells.Eq(0).Text()),
			Value: strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return out
}

// Extract locates the table identified by marker in body and returns its
// rows. A missing table is reported as core.ErrTableNotFound.
func Extract(body, marker string) (Table, error) {
	doc, err := Parse(body)
	if err != nil {
		return Table{}, err
	}
	table, ok := FindTable(doc, marker)
	if !ok {
		return Table{}, fmt.Errorf("%w: no table contains %q (%d tables on page)", core.ErrTableNotFound, marker, doc.Find("table").Length())
	}
	return ExtractRows(table), nil
}
