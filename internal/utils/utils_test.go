package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare domain gets https",
			input:    "example.com",
			expected: "https://example.com",
		},
		{
			name:     "https URL unchanged",
			input:    "https://example.com",
			expected: "https://example.com",
		},
		{
			name:     "http URL unchanged",
			input:    "http://example.com",
			expected: "http://example.com",
		},
		{
			name:     "domain with path gets https",
			input:    "example.com/page?q=1",
			expected: "https://example.com/page?q=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func TestGenerateRunName(t *testing.T) {
	name := GenerateRunName()
	assert.NotEmpty(t, name)
	assert.NotContains(t, name, "_", "underscores should be converted to hyphens")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	long := TruncateText("https://example.com/a/very/long/path/to/resource", 20)
	assert.LessOrEqual(t, len([]rune(long)), 20)
	assert.Contains(t, long, "…")
}

func TestTitleize(t *testing.T) {
	assert.Equal(t, "First Contentful Paint", Titleize("first-contentful-paint"))
	assert.Equal(t, "Best Practices", Titleize("best_practices"))
	assert.Equal(t, "Seo", Titleize("seo"))
}
