package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultTimeout    = 30 * time.Second
)

// Client wraps HTTP GETs against upstream data providers with a tiered
// retry policy: the first three retries wait the base delay, retries
// 4-5 wait twice that, 6-8 three times, anything beyond five times.
type Client struct {
	http       *http.Client
	maxRetries int
	baseDelay  time.Duration
}

type Options struct {
	HTTPClient *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

func NewClient(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	return &Client{
		http:       opts.HTTPClient,
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
	}
}

// Get fetches the URL, retrying transient failures per the tiered
// policy. Retries are only logged once they pass the fifth attempt;
// short provider hiccups are routine.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		if attempt > 5 {
			logger.Warn().
				Err(err).
				Str("url", url).
				Int("retry", attempt).
				Msg("request failed, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay(c.baseDelay, attempt)):
		}
	}

	return nil, fmt.Errorf("get %s failed after %d attempts: %w", url, c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func retryDelay(base time.Duration, retry int) time.Duration {
	switch {
	case retry <= 3:
		return base
	case retry <= 5:
		return 2 * base
	case retry <= 8:
		return 3 * base
	default:
		return 5 * base
	}
}
