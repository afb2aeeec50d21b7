package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

func sampleResponse(t *testing.T) pagespeed.RawResponse {
	t.Helper()

	payload := `{
		"lighthouseResult": {
			"finalUrl": "https://example.com/home",
			"fetchTime": "2026-08-25T10:00:00.000Z",
			"categories": {
				"performance": {"score": 0.92},
				"accessibility": {"score": 0.95},
				"best-practices": {"score": 0.91},
				"seo": {"score": 0.88}
			},
			"audits": {
				"first-contentful-paint": {
					"numericValue": 1234.5,
					"displayValue": "1.2 s",
					"score": 0.93
				},
				"largest-contentful-paint": {
					"numericValue": 2500.0,
					"displayValue": "2.5 s",
					"score": 0.78
				},
				"cumulative-layout-shift": {
					"numericValue": 0.01,
					"displayValue": "0.01",
					"score": 1.0
				},
				"diagnostics": {
					"details": {
						"items": [{"serverResponseTime": 120.5}]
					}
				},
				"network-requests": {
					"details": {
						"items": [
							{"url": "https://cdn.example.com/jquery.min.js"},
							{"url": "https://example.com/static/react.production.js"},
							{"url": "https://cdn.example.com/jquery-and-bootstrap-bundle.js"},
							{"url": "https://example.com/styles/main.css"}
						]
					}
				}
			}
		}
	}`

	var raw pagespeed.RawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestExtract(t *testing.T) {
	raw := sampleResponse(t)

	record := Extract(raw, "https://example.com", pagespeed.StrategyMobile)

	assert.Equal(t, "https://example.com", record.URL)
	assert.Equal(t, pagespeed.StrategyMobile, record.Strategy)
	assert.NotEmpty(t, record.Timestamp)

	assert.Equal(t, Scores{
		Performance:   92,
		Accessibility: 95,
		BestPractices: 91,
		SEO:           88,
	}, record.Scores)

	fcp, ok := record.Metrics["first-contentful-paint"]
	require.True(t, ok)
	require.NotNil(t, fcp.DisplayValue)
	assert.Equal(t, "1.2 s", *fcp.DisplayValue)
	require.NotNil(t, fcp.Value)
	assert.InDelta(t, 1234.5, *fcp.Value, 0.001)
	require.NotNil(t, fcp.Score)
	assert.InDelta(t, 0.93, *fcp.Score, 0.001)

	// Ids absent from the response are omitted, not defaulted
	assert.Contains(t, record.Metrics, "largest-contentful-paint")
	assert.Contains(t, record.Metrics, "cumulative-layout-shift")
	assert.NotContains(t, record.Metrics, "total-blocking-time")
	assert.NotContains(t, record.Metrics, "speed-index")

	assert.Equal(t, "https://example.com/home", record.FinalURL)
	require.NotNil(t, record.FetchTime)
	assert.Equal(t, "2026-08-25T10:00:00.000Z", *record.FetchTime)
}

func TestExtractTechStack(t *testing.T) {
	raw := sampleResponse(t)

	tech := Extract(raw, "https://example.com", pagespeed.StrategyMobile).TechStack

	// The combined jquery/bootstrap URL counts only as jQuery, and the two
	// jQuery hits deduplicate to one entry
	assert.Equal(t, []string{"jQuery"}, tech.Libraries)
	assert.Equal(t, []string{"React"}, tech.Frameworks)

	assert.InDelta(t, 120.5, tech.Server.(float64), 0.001)
	assert.Nil(t, tech.CMS)
}

func TestExtractEmptyResponse(t *testing.T) {
	record := Extract(pagespeed.RawResponse{}, "https://example.com", pagespeed.StrategyDesktop)

	assert.Equal(t, Scores{}, record.Scores)
	assert.Empty(t, record.Metrics)
	assert.NotNil(t, record.TechStack.Frameworks)
	assert.NotNil(t, record.TechStack.Libraries)
	assert.Empty(t, record.TechStack.Frameworks)
	assert.Empty(t, record.TechStack.Libraries)
	assert.Nil(t, record.TechStack.Server)
	assert.Nil(t, record.TechStack.CMS)
	assert.Equal(t, "https://example.com", record.FinalURL)
	assert.Nil(t, record.FetchTime)
}

func TestExtractMalformedShapes(t *testing.T) {
	payload := `{
		"lighthouseResult": {
			"categories": "not-an-object",
			"audits": {
				"first-contentful-paint": "not-an-object",
				"network-requests": {"details": {"items": "not-a-list"}},
				"diagnostics": {"details": {"items": []}}
			}
		}
	}`

	var raw pagespeed.RawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	record := Extract(raw, "https://example.com", pagespeed.StrategyMobile)

	assert.Equal(t, Scores{}, record.Scores)
	assert.Empty(t, record.Metrics)
	assert.Empty(t, record.TechStack.Frameworks)
	assert.Empty(t, record.TechStack.Libraries)
	assert.Nil(t, record.TechStack.Server)
}

func TestScoreIndicator(t *testing.T) {
	tests := []struct {
		score    float64
		expected Indicator
	}{
		{100, IndicatorGreen},
		{95, IndicatorGreen},
		{90, IndicatorGreen},
		{89.9, IndicatorYellow},
		{75, IndicatorYellow},
		{50, IndicatorYellow},
		{49.9, IndicatorRed},
		{45, IndicatorRed},
		{0, IndicatorRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreIndicator(tt.score), "score %v", tt.score)
	}
}
