// Package currency installs currency units from a fetched exchange-rate
// snapshot. Rates are taken once at install time and never refreshed, and
// all arithmetic runs on standard floats.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.frankfurter.dev/v1"

	// maxResponseSize limits the rate response body.
	maxResponseSize = 1 << 20
)

// RetryConfig holds retry configuration for rate requests.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for rate requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Second,
	}
}

// Rates is a snapshot of euro exchange rates.
type Rates struct {
	// Date is the quote date reported by the rate service.
	Date string

	quotes map[string]float64
}

// Quote returns how many euros one unit of the coded currency is worth.
func (r *Rates) Quote(code string) (float64, bool) {
	q, ok := r.quotes[code]
	return q, ok
}

// Codes lists the quoted currency codes in sorted order.
func (r *Rates) Codes() []string {
	codes := make([]string, 0, len(r.quotes))
	for code := range r.quotes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ratesResponse is the wire shape of the rate service's latest endpoint.
// Rates are quoted against the euro: rates[code] units of code per euro.
type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches exchange-rate snapshots with retry support.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig RetryConfig
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the rate service base URL.
func WithBaseURL(url string) ClientOption {
	return func(client *Client) {
		client.baseURL = url
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a rate client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Latest fetches the current euro exchange rates, retrying transient
// failures with exponential backoff.
func (c *Client) Latest(ctx context.Context) (*Rates, error) {
	requestID := uuid.New().String()

	var lastErr error
	for attempt := 1; attempt <= c.retryConfig.MaxAttempts; attempt++ {
		rates, retryable, err := c.fetch(ctx, requestID)
		if err == nil {
			return rates, nil
		}
		lastErr = err

		if !retryable {
			return nil, err
		}

		if attempt < c.retryConfig.MaxAttempts {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debug("rate request failed, retrying",
				"request_id", requestID,
				"attempt", attempt,
				"max_attempts", c.retryConfig.MaxAttempts,
				"backoff", backoff,
				"error", err)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("fetch rates: %w", lastErr)
}

// fetch executes a single rate request. The returned bool reports whether
// the failure is worth retrying.
func (c *Client) fetch(ctx context.Context, requestID string) (*Rates, bool, error) {
	url := c.baseURL + "/latest?base=EUR"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are transient.
		return nil, true, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, true, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("rate service error (status %d)", resp.StatusCode)
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, err
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("parse rates: %w", err)
	}
	if parsed.Base != "" && parsed.Base != "EUR" {
		return nil, false, fmt.Errorf("unexpected rate base %q", parsed.Base)
	}
	if len(parsed.Rates) == 0 {
		return nil, false, fmt.Errorf("rate response has no rates")
	}

	// Invert to euros per unit, the factor a currency unit carries.
	quotes := make(map[string]float64, len(parsed.Rates))
	for code, perEuro := range parsed.Rates {
		if perEuro > 0 {
			quotes[code] = 1 / perEuro
		}
	}

	return &Rates{Date: parsed.Date, quotes: quotes}, false, nil
}

// calculateBackoff computes exponential backoff duration with jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	multiplier := 1.0
	for i := 1; i < attempt; i++ {
		multiplier *= c.retryConfig.BackoffMultiplier
	}

	backoff := time.Duration(float64(c.retryConfig.BackoffBase) * multiplier)
	if backoff > c.retryConfig.MaxBackoff {
		backoff = c.retryConfig.MaxBackoff
	}

	jitter := float64(backoff) * 0.25 * (rand.Float64()*2 - 1)
	return backoff + time.Duration(jitter)
}
