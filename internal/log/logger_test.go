package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})

	l.WithComponent(ComponentScrape).Info("fetched", FieldRows, 3)

	out := buf.String()
	if !strings.Contains(out, "component=scrape") {
		t.Fatalf("missing component in %q", out)
	}
	if !strings.Contains(out, "rows=3") {
		t.Fatalf("missing rows in %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentStorage).
		WithOperation(OpReplace).
		WithError(errors.New("disk full"), "database_error")

	if f[FieldComponent] != ComponentStorage || f[FieldOperation] != OpReplace {
		t.Fatalf("unexpected fields: %v", f)
	}
	if f[FieldError] != "disk full" || f[FieldErrorType] != "database_error" {
		t.Fatalf("unexpected error fields: %v", f)
	}
	if got := len(f.ToSlice()); got != 8 {
		t.Fatalf("ToSlice length = %d, want 8", got)
	}

	if _, ok := NewFields().WithError(nil, "x")[FieldError]; ok {
		t.Fatalf("nil error must not add a field")
	}
}
