// Package scrape retrieves the source page and pulls the revenue table out
// of it.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
	"github.com/frankiemarley/web-scraping-project-tutorial/internal/log"
)

const maxBackoff = 30 * time.Second

// Config configures the fetcher.
type Config struct {
	URL       string
	UserAgent string
	Timeout   time.Duration // per attempt. Default: 30s.
	Retries   int           // extra attempts after the first one
	Backoff   time.Duration // first retry delay, doubled per attempt. Default: 1s.
	MaxBytes  int64         // Max response body size. Default: 10MB.
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Backoff <= 0 {
		c.Backoff = time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
}

// ErrBodyTooLarge marks a response larger than Config.MaxBytes. A partial
// page would yield a partial table, so it is never retried or returned.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPError is returned for a non-success response status.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: http %d", e.URL, e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return core.ErrNetwork }

// Fetcher performs the single GET of the source page.
type Fetcher struct {
	client *http.Client
	config Config
	logger *log.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a Fetcher.
func New(cfg Config, logger *log.Logger) *Fetcher {
	cfg.defaults()
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		logger: logger.WithComponent(log.ComponentScrape),
		sleep:  sleepContext,
	}
}

// Fetch returns the page body. Network failures and timeouts are retried
// with exponential backoff; the last error is returned once attempts run out.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.config.Retries; attempt++ {
		if attempt > 0 {
			delay := exponentialBackoff(f.config.Backoff, attempt-1)
			f.logger.WarnContext(ctx, "Retrying fetch",
				log.FieldAttempt, attempt+1,
				"delay", delay,
				log.FieldError, lastErr)
			if err := f.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("fetch %s: %w", f.config.URL, err)
			}
		}

		body, err := f.fetchOnce(ctx, attempt+1)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, attempt int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.config.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: new request: %v", core.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: GET %s after %v: %v", core.ErrTimeout, f.config.URL, time.Since(start).Round(time.Millisecond), err)
		}
		return "", fmt.Errorf("%w: GET %s: %v", core.ErrNetwork, f.config.URL, err)
	}
	defer resp.Body.Close()

	fields := log.NewFields().
		WithOperation(log.OpFetch).
		WithFetch(f.config.URL, resp.StatusCode, attempt, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.WarnContext(ctx, "Source returned non-success status", fields.ToSlice()...)
		return "", &HTTPError{URL: f.config.URL, StatusCode: resp.StatusCode}
	}

	// One byte past the cap tells a complete body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes+1))
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: read body of %s: %v", core.ErrTimeout, f.config.URL, err)
		}
		return "", fmt.Errorf("%w: read body of %s: %v", core.ErrNetwork, f.config.URL, err)
	}
	if int64(len(body)) > f.config.MaxBytes {
		f.logger.WarnContext(ctx, "Source page exceeds size limit", append(fields.ToSlice(), "max_bytes", f.config.MaxBytes)...)
		return "", fmt.Errorf("%w: body of %s exceeds %d bytes: %w", core.ErrNetwork, f.config.URL, f.config.MaxBytes, ErrBodyTooLarge)
	}

	f.logger.InfoContext(ctx, "Fetched source page", append(fields.ToSlice(), "bytes", len(body))...)
	return string(body), nil
}

// exponentialBackoff returns base * 2^attempt, capped at 30s.
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// retryable reports whether another attempt may succeed. Client errors other
// than 408 and 429 are final.
func retryable(err error) bool {
	if errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusRequestTimeout, httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		case httpErr.StatusCode >= 400 && httpErr.StatusCode < 500:
			return false
		}
		return true
	}
	return errors.Is(err, core.ErrNetwork) || errors.Is(err, core.ErrTimeout)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
