package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedClient is a per-source rate-limited HTTP client: one limiter
// per remote service, since each scraper source has its own politeness
// requirement (arxiv ~15s, crossref ~1s).
type RateLimitedClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewRateLimitedClient builds a client that waits interval between
// requests, with a burst of 1 (a single-slot limiter).
func NewRateLimitedClient(interval time.Duration, userAgent string) *RateLimitedClient {
	every := rate.Every(interval)
	return &RateLimitedClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(every, 1),
		userAgent:  userAgent,
	}
}

// Get performs a rate-limited GET, setting the configured user agent.
func (c *RateLimitedClient) Get(ctx context.Context, url string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrTemporary, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading body: %v", ErrTemporary, err)
	}

	return body, resp.StatusCode, nil
}
