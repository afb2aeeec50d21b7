// Package audit turns raw PageSpeed Insights responses into normalized audit
// records and renders them for the console.
package audit

import (
	"sort"
	"strings"
	"time"

	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

// Extract builds a ResultRecord from a raw API response. Access to the
// response is defensive throughout: a malformed or partial document degrades
// to zero scores, omitted metrics and empty tech-stack sets, never an error.
func Extract(raw pagespeed.RawResponse, url string, strategy pagespeed.Strategy) *ResultRecord {
	scores := Scores{
		Performance:   raw.FloatAt(0, "lighthouseResult", "categories", "performance", "score") * 100,
		Accessibility: raw.FloatAt(0, "lighthouseResult", "categories", "accessibility", "score") * 100,
		BestPractices: raw.FloatAt(0, "lighthouseResult", "categories", "best-practices", "score") * 100,
		SEO:           raw.FloatAt(0, "lighthouseResult", "categories", "seo", "score") * 100,
	}

	metrics := make(map[string]Metric)
	audits := raw.MapAt("lighthouseResult", "audits")
	for _, id := range MetricIDs {
		entry, ok := audits[id].(map[string]any)
		if !ok {
			// Absent ids are omitted, not defaulted
			continue
		}
		metrics[id] = Metric{
			Value:        floatField(entry, "numericValue"),
			DisplayValue: stringField(entry, "displayValue"),
			Score:        floatField(entry, "score"),
		}
	}

	var fetchTime *string
	if s, ok := raw.GetPath("lighthouseResult", "fetchTime").(string); ok {
		fetchTime = &s
	}

	return &ResultRecord{
		URL:       url,
		Strategy:  strategy,
		Timestamp: time.Now().Format(time.RFC3339),
		Scores:    scores,
		Metrics:   metrics,
		TechStack: detectTechStack(raw),
		FinalURL:  raw.StringAt(url, "lighthouseResult", "finalUrl"),
		FetchTime: fetchTime,
	}
}

// detectTechStack guesses frameworks and libraries from resource URLs loaded
// during the audit. Matching is first-match-wins per URL: a URL containing
// both "jquery" and "bootstrap" counts only as jQuery.
func detectTechStack(raw pagespeed.RawResponse) TechStack {
	tech := TechStack{
		Frameworks: []string{},
		Libraries:  []string{},
	}

	// Server response time from the first diagnostics item, when present
	if items := raw.SliceAt("lighthouseResult", "audits", "diagnostics", "details", "items"); len(items) > 0 {
		if item, ok := items[0].(map[string]any); ok {
			tech.Server = item["serverResponseTime"]
		}
	}

	frameworks := make(map[string]struct{})
	libraries := make(map[string]struct{})

	for _, entry := range raw.SliceAt("lighthouseResult", "audits", "network-requests", "details", "items") {
		req, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		url, _ := req["url"].(string)
		url = strings.ToLower(url)

		switch {
		case strings.Contains(url, "jquery"):
			libraries["jQuery"] = struct{}{}
		case strings.Contains(url, "react"):
			frameworks["React"] = struct{}{}
		case strings.Contains(url, "angular"):
			frameworks["Angular"] = struct{}{}
		case strings.Contains(url, "vue"):
			frameworks["Vue.js"] = struct{}{}
		case strings.Contains(url, "bootstrap"):
			libraries["Bootstrap"] = struct{}{}
		}
	}

	tech.Frameworks = sortedKeys(frameworks)
	tech.Libraries = sortedKeys(libraries)

	// No CMS detection rule exists yet; the field stays null

	return tech
}

// sortedKeys flattens a set into a sorted slice for stable output
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// floatField returns a pointer to the numeric field, or nil when the field is
// missing, null, or not a number
func floatField(m map[string]any, key string) *float64 {
	if f, ok := m[key].(float64); ok {
		return &f
	}
	return nil
}

// stringField returns a pointer to the string field, or nil when missing or null
func stringField(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}
