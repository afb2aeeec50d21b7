// Package pagespeed implements a client for the Google PageSpeed Insights
// API (v5 runPagespeed endpoint).
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/webaudit/internal/config"
	"github.com/tildaslashalef/webaudit/internal/loggy"
	"github.com/tildaslashalef/webaudit/internal/ulid"
)

// DefaultBaseURL is the well-known PageSpeed Insights v5 endpoint
const DefaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Client is the PageSpeed Insights API client. Audits are strictly
// sequential: one blocking call per audit, no retries. A failed request is
// fatal to the caller by design.
type Client struct {
	config     config.PageSpeedConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new PageSpeed client with the provided configuration
func NewClient(cfg config.PageSpeedConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		},
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    newLimiter(cfg.RequestsPerMinute, cfg.BurstLimit),
	}
}

// newLimiter creates a rate limiter from RPM and burst values
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		// Zero or negative RPM disables client-side limiting
		return rate.NewLimiter(rate.Inf, 1)
	}
	b := burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), b)
}

// RunAudit fetches a single report for the given URL and strategy. The four
// Lighthouse categories are always requested; the API key is attached when
// configured.
func (c *Client) RunAudit(ctx context.Context, targetURL string, strategy Strategy) (RawResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("strategy", string(strategy))
	for _, category := range Categories {
		params.Add("category", category)
	}
	if c.config.APIKey != "" {
		params.Set("key", c.config.APIKey)
	}

	reqURL := fmt.Sprintf("%s?%s", c.config.BaseURL, params.Encode())

	requestID := ulid.RequestID()
	loggy.Debug("Requesting PageSpeed report",
		"request_id", requestID,
		"url", targetURL,
		"strategy", string(strategy))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if len(bodyBytes) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	var raw RawResponse
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling response body: %w", err)
	}

	return raw, nil
}
