package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSourceURL = "https://www.macrotrends.net/stocks/charts/TSLA/tesla/revenue"
	DefaultMarker    = "Tesla Quarterly Revenue"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	// Source
	SourceURL    string
	TableMarker  string
	UserAgent    string
	FetchTimeout time.Duration
	FetchRetries int
	FetchBackoff time.Duration

	// Database
	SQLiteDBPath string

	// Report
	OutputDir   string
	CutoffYear  int
	PreviewRows int

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	LogLevel string

	// malformed numeric or duration variables seen by Load
	invalidEnv []string
}

var (
	intVars      = []string{"FETCH_RETRIES", "REPORT_CUTOFF_YEAR", "PREVIEW_ROWS"}
	durationVars = []string{"FETCH_TIMEOUT", "FETCH_BACKOFF"}
)

func Load() *Config {
	return &Config{
		SourceURL:    getEnv("SOURCE_URL", DefaultSourceURL),
		TableMarker:  getEnv("TABLE_MARKER", DefaultMarker),
		UserAgent:    getEnv("USER_AGENT", DefaultUserAgent),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchRetries: getEnvInt("FETCH_RETRIES", 3),
		FetchBackoff: getEnvDuration("FETCH_BACKOFF", time.Second),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/tesla_revenue.db"),

		OutputDir:   getEnv("OUTPUT_DIR", "./charts"),
		CutoffYear:  getEnvInt("REPORT_CUTOFF_YEAR", 0),
		PreviewRows: getEnvInt("PREVIEW_ROWS", 5),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "revenue"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "revenue_refreshed"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Revenue"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		invalidEnv: malformedEnv(),
	}
}

// malformedEnv lists variables that are set but do not parse. Load falls back
// to defaults for them and Validate reports them.
func malformedEnv() []string {
	var bad []string
	for _, key := range intVars {
		if value := os.Getenv(key); value != "" {
			if _, err := strconv.Atoi(value); err != nil {
				bad = append(bad, fmt.Sprintf("invalid %s %q: must be an integer", key, value))
			}
		}
	}
	for _, key := range durationVars {
		if value := os.Getenv(key); value != "" {
			if _, err := time.ParseDuration(value); err != nil {
				bad = append(bad, fmt.Sprintf("invalid %s %q: must be a duration such as 30s", key, value))
			}
		}
	}
	return bad
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	errors = append(errors, c.invalidEnv...)

	// Validate source URL
	if c.SourceURL == "" {
		errors = append(errors, "source URL cannot be empty")
	} else if u, err := url.Parse(c.SourceURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid source URL '%s': %v", c.SourceURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid source URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	}

	if strings.TrimSpace(c.TableMarker) == "" {
		errors = append(errors, "table marker cannot be empty")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		errors = append(errors, "user agent cannot be empty")
	}

	// Validate fetch tuning
	if c.FetchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 1 second", c.FetchTimeout))
	} else if c.FetchTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at most 10 minutes", c.FetchTimeout))
	}
	if c.FetchRetries < 0 || c.FetchRetries > 10 {
		errors = append(errors, fmt.Sprintf("invalid fetch retries %d: must be between 0 and 10", c.FetchRetries))
	}
	if c.FetchBackoff <= 0 {
		errors = append(errors, fmt.Sprintf("invalid fetch backoff %v: must be positive", c.FetchBackoff))
	}

	// Validate SQLite configuration
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate report configuration
	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	}
	if c.CutoffYear < 0 {
		errors = append(errors, fmt.Sprintf("invalid cutoff year %d: must be 0 (current year) or a year", c.CutoffYear))
	}
	if c.PreviewRows < 0 {
		errors = append(errors, fmt.Sprintf("invalid preview rows %d: must not be negative", c.PreviewRows))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets export if enabled
	if c.GoogleSpreadsheetID != "" && c.GoogleSheetName == "" {
		errors = append(errors, "Google Sheet name is required when GOOGLE_SPREADSHEET_ID is set")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
