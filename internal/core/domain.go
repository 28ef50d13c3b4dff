package core

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical text form of a period, as persisted.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Record is one quarterly revenue figure.
	Record struct {
		Period Date
		Amount int64 // whole currency units
	}

	// RawRow is a (label, value) pair scraped from a table row.
	RawRow struct {
		Row   int // 1-based <tr> index inside the table
		Label string
		Value string
	}
)

var (
	ErrNetwork       = errors.New("network error")
	ErrTimeout       = errors.New("timeout")
	ErrTableNotFound = errors.New("table not found")
	ErrParse         = errors.New("parse error")
	ErrInvalidAmount = errors.New("invalid amount")
)

// RowError reports a row that could not be normalized.
type RowError struct {
	Row   int
	Label string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%q, %q): %v", e.Row, e.Label, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Period.Validate(); err != nil {
		return err
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ErrorType classifies err for structured logs.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "timeout_error"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	case errors.Is(err, ErrTableNotFound):
		return "not_found_error"
	case errors.Is(err, ErrParse):
		return "validation_error"
	default:
		return "internal_error"
	}
}
