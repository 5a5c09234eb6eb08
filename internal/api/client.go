package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Config holds connection and retry settings for the API client.
type Config struct {
	BaseURL string

	// Retries is the total number of attempts per call. Values below 1 are
	// treated as 1.
	Retries int

	// BaseDelay is the backoff unit: after failed attempt n (0-based) the
	// client waits 2^n * BaseDelay before trying again.
	BaseDelay time.Duration

	// Timeout bounds a single attempt. Zero disables the per-attempt timeout.
	Timeout time.Duration

	// ShouldRetry decides whether a failed attempt may be retried. Nil retries
	// every failure, 4xx responses included.
	ShouldRetry func(err error) bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:9010/api",
		Retries:   3,
		BaseDelay: time.Second,
		Timeout:   10 * time.Second,
	}
}

// MaxBackoff caps a single wait between attempts.
const MaxBackoff = time.Hour

// Backoff returns the wait before the retry that follows attempt n (0-based):
// 2^n * base, so 1s, 2s, 4s for a one second base, never more than
// MaxBackoff.
func Backoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 || attempt < 0 {
		return 0
	}
	if base >= MaxBackoff || attempt >= 62 || base > MaxBackoff>>attempt {
		return MaxBackoff
	}
	return base << attempt
}

// Client performs resilient JSON calls against the planner API.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithObserver installs a call observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithSleeper replaces the backoff wait. Tests use it to record delays
// instead of sleeping.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: NoopObserver{},
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Call performs method on path, retrying failed attempts with exponential
// backoff. A 204 or empty-bodied success returns a nil payload, which is
// distinct from an empty JSON object. After the last attempt fails the
// returned error wraps ErrRetryExhausted and the final attempt's error.
func (c *Client) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = data
	}

	attempts := max(c.cfg.Retries, 1)
	requestID := uuid.NewString()
	start := time.Now()

	event := CallEvent{RequestID: requestID, Method: method, Path: path}
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		event.Attempts = attempt + 1

		data, status, err := c.do(ctx, method, path, payload, requestID)
		event.StatusCode = status
		if err == nil {
			event.Success = true
			event.LatencyMs = time.Since(start).Milliseconds()
			c.observer.OnCallComplete(event)
			return data, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		if c.cfg.ShouldRetry != nil && !c.cfg.ShouldRetry(err) {
			break
		}
		if waitErr := c.sleep(ctx, Backoff(attempt, c.cfg.BaseDelay)); waitErr != nil {
			event.LatencyMs = time.Since(start).Milliseconds()
			event.ErrorCode = "CANCELLED"
			c.observer.OnCallComplete(event)
			return nil, waitErr
		}
	}

	event.LatencyMs = time.Since(start).Milliseconds()
	event.ErrorCode = errorCode(lastErr)
	c.observer.OnCallComplete(event)

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, event.Attempts, lastErr)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, requestID string) (json.RawMessage, int, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return nil, 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(data)), 200),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, nil
	}
	if !json.Valid(data) {
		return nil, resp.StatusCode, fmt.Errorf("decoding response from %s %s: invalid JSON", method, path)
	}
	return json.RawMessage(data), resp.StatusCode, nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case StatusCode(err) != 0:
		return fmt.Sprintf("HTTP_%d", StatusCode(err))
	default:
		return "UNKNOWN"
	}
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
