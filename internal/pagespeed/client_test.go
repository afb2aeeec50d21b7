package pagespeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/webaudit/internal/config"
)

// setupTestServer creates a test HTTP server that simulates the PageSpeed API
func setupTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)

	cfg := config.PageSpeedConfig{
		BaseURL:             server.URL,
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	}

	return server, NewClient(cfg)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(config.PageSpeedConfig{Timeout: time.Minute})

	assert.Equal(t, DefaultBaseURL, client.config.BaseURL, "empty base URL should fall back to the default endpoint")
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, time.Minute, client.httpClient.Timeout)
	assert.NotNil(t, client.limiter)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{input: "mobile", want: StrategyMobile},
		{input: "desktop", want: StrategyDesktop},
		{input: "tablet", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunAudit(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "Unexpected HTTP method")

		query := r.URL.Query()
		assert.Equal(t, "https://example.com", query.Get("url"))
		assert.Equal(t, "mobile", query.Get("strategy"))
		assert.ElementsMatch(t,
			[]string{"performance", "accessibility", "best-practices", "seo"},
			query["category"],
			"all four categories should be requested")
		assert.Empty(t, query.Get("key"), "no key should be sent when unconfigured")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"lighthouseResult": {
				"finalUrl": "https://example.com/",
				"categories": {"performance": {"score": 0.92}}
			}
		}`))
	})
	defer server.Close()

	raw, err := client.RunAudit(context.Background(), "https://example.com", StrategyMobile)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", raw.StringAt("", "lighthouseResult", "finalUrl"))
	assert.Equal(t, 0.92, raw.FloatAt(0, "lighthouseResult", "categories", "performance", "score"))
}

func TestRunAuditSendsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key-123", r.URL.Query().Get("key"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(config.PageSpeedConfig{
		APIKey:              "test-key-123",
		BaseURL:             server.URL,
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	})

	_, err := client.RunAudit(context.Background(), "https://example.com", StrategyDesktop)
	require.NoError(t, err)
}

func TestRunAuditServerError(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Quota exceeded"}}`))
	})
	defer server.Close()

	_, err := client.RunAudit(context.Background(), "https://example.com", StrategyMobile)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429", "Error should contain the status code")
	assert.Contains(t, err.Error(), "Quota exceeded", "Error should contain the response body")
}

func TestRunAuditContextCancellation(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Simulate a slow response
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.RunAudit(ctx, "https://example.com", StrategyMobile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context", "Error should mention context")
}

func TestRunAuditEmptyBody(t *testing.T) {
	server, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	_, err := client.RunAudit(context.Background(), "https://example.com", StrategyMobile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response body")
}

func TestRawResponseGetPath(t *testing.T) {
	raw := RawResponse{
		"lighthouseResult": map[string]any{
			"categories": map[string]any{
				"performance": map[string]any{"score": 0.92},
			},
			"audits": map[string]any{
				"network-requests": map[string]any{
					"details": map[string]any{
						"items": []any{
							map[string]any{"url": "https://cdn.example.com/jquery.min.js"},
						},
					},
				},
			},
		},
	}

	assert.Equal(t, 0.92, raw.FloatAt(0, "lighthouseResult", "categories", "performance", "score"))
	assert.Equal(t, float64(0), raw.FloatAt(0, "lighthouseResult", "categories", "seo", "score"), "missing path should yield the default")
	assert.Nil(t, raw.GetPath("lighthouseResult", "missing", "deeper"))
	assert.Len(t, raw.SliceAt("lighthouseResult", "audits", "network-requests", "details", "items"), 1)
	assert.Empty(t, raw.SliceAt("lighthouseResult", "audits", "no-such-audit", "details", "items"))
	assert.Equal(t, "fallback", raw.StringAt("fallback", "lighthouseResult", "finalUrl"))

	// Path through a non-map value degrades to defaults rather than panicking
	assert.Equal(t, float64(7), raw.FloatAt(7, "lighthouseResult", "categories", "performance", "score", "deeper"))
}
