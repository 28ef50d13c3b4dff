// Package core provides the revenue record model and the rules that turn
// scraped table text into records.
//
// This file contains the parsing of date labels and amount text.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var dateLayouts = []string{
	DateLayout,
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"01/02/2006",
	"2006/01/02",
}

// ParseDate parses a period label such as "2022-12-31" or "Dec 31, 2022".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: unrecognized date %q", ErrParse, s)
}

// ParseAmount converts amount text to whole units.
//
// A leading currency symbol and grouping separators are stripped. Empty text
// is zero, mirroring a blank cell in the source table.
//
// Examples:
//   ParseAmount("$24,318") -> 24318, nil
//   ParseAmount("")        -> 0, nil
//   ParseAmount("-$12")    -> -12, nil
//   ParseAmount("n/a")     -> 0, ErrParse
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	if r, size := utf8.DecodeRuneInString(s); size > 0 && unicode.Is(unicode.Sc, r) {
		s = s[size:]
	}
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(sign+s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not an integer", ErrParse, sign+s)
	}
	return v, nil
}
