package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

func testRecord() *ResultRecord {
	value := 1234.5
	display := "1.2 s"
	score := 0.93
	fetchTime := "2026-08-25T10:00:00.000Z"

	return &ResultRecord{
		URL:       "https://example.com",
		Strategy:  pagespeed.StrategyMobile,
		Timestamp: "2026-08-25T10:00:05Z",
		Scores: Scores{
			Performance:   92,
			Accessibility: 95,
			BestPractices: 91,
			SEO:           88,
		},
		Metrics: map[string]Metric{
			"first-contentful-paint": {
				Value:        &value,
				DisplayValue: &display,
				Score:        &score,
			},
		},
		TechStack: TechStack{
			Frameworks: []string{"React"},
			Libraries:  []string{"jQuery"},
			Server:     float64(120.5),
		},
		FinalURL:  "https://example.com/home",
		FetchTime: &fetchTime,
	}
}

func TestSaveLoadRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	record := testRecord()

	require.NoError(t, Save(path, record))

	loaded, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestSaveLoadCombinedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	combined := &CombinedResult{Mobile: testRecord(), Desktop: testRecord()}
	combined.Desktop.Strategy = pagespeed.StrategyDesktop

	require.NoError(t, Save(path, combined))

	loaded, err := LoadCombined(path)
	require.NoError(t, err)
	assert.Equal(t, combined, loaded)
}

func TestSaveBadPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", "results.json"), testRecord())
	assert.Error(t, err)
}
