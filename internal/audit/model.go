package audit

import (
	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

// MetricIDs is the fixed, ordered list of Lighthouse audits surfaced as
// metrics. Ids absent from a response are omitted from the result entirely.
var MetricIDs = []string{
	"first-contentful-paint",
	"largest-contentful-paint",
	"total-blocking-time",
	"cumulative-layout-shift",
	"speed-index",
}

// ResultRecord is the normalized outcome of one audit. It is constructed once
// per invocation and immutable afterwards; it is either printed, saved to a
// JSON file, or recorded in history.
type ResultRecord struct {
	URL       string              `json:"url"`
	Strategy  pagespeed.Strategy  `json:"strategy"`
	Timestamp string              `json:"timestamp"`
	Scores    Scores              `json:"scores"`
	Metrics   map[string]Metric   `json:"metrics"`
	TechStack TechStack           `json:"tech_stack"`
	FinalURL  string              `json:"final_url"`
	FetchTime *string             `json:"fetch_time"`
}

// Scores holds the four Lighthouse category scores on a 0-100 scale
type Scores struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	BestPractices float64 `json:"best_practices"`
	SEO           float64 `json:"seo"`
}

// Metric is a single performance measurement. Value and Score keep the
// upstream null when the audit carried no number; Score is a 0-1 fraction.
type Metric struct {
	Value        *float64 `json:"value"`
	DisplayValue *string  `json:"displayValue"`
	Score        *float64 `json:"score"`
}

// TechStack is a best-effort guess of the technologies in use, derived from
// substring matches against loaded resource URLs. Server carries the
// serverResponseTime diagnostic value verbatim (a number, or null). CMS is a
// stable field with no detection rule yet; it is always null.
type TechStack struct {
	Frameworks []string `json:"frameworks"`
	Libraries  []string `json:"libraries"`
	Server     any      `json:"server"`
	CMS        *string  `json:"cms"`
}

// CombinedResult pairs the mobile and desktop records produced by --both
type CombinedResult struct {
	Mobile  *ResultRecord `json:"mobile"`
	Desktop *ResultRecord `json:"desktop"`
}
