package pagespeed

import "fmt"

// Strategy selects the device emulation profile for an audit.
type Strategy string

const (
	// StrategyMobile audits with mobile device emulation
	StrategyMobile Strategy = "mobile"

	// StrategyDesktop audits with desktop emulation
	StrategyDesktop Strategy = "desktop"
)

// ParseStrategy validates and converts a strategy string
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMobile, StrategyDesktop:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("invalid strategy %q (must be mobile or desktop)", s)
	}
}

// Categories are the Lighthouse categories requested on every audit
var Categories = []string{"performance", "accessibility", "best-practices", "seo"}

// RawResponse is the PageSpeed Insights API response document. The upstream
// shape is not under our control, so it is kept as a nested mapping and read
// defensively: any missing segment degrades to a zero value, never an error.
type RawResponse map[string]any

// GetPath walks nested maps along the given keys and returns the value at the
// end of the path, or nil when any segment is missing or not a map.
func (r RawResponse) GetPath(path ...string) any {
	var current any = map[string]any(r)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// MapAt returns the map at the given path, or an empty map when absent
func (r RawResponse) MapAt(path ...string) map[string]any {
	if m, ok := r.GetPath(path...).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// SliceAt returns the slice at the given path, or an empty slice when absent
func (r RawResponse) SliceAt(path ...string) []any {
	if s, ok := r.GetPath(path...).([]any); ok {
		return s
	}
	return nil
}

// FloatAt returns the number at the given path, or def when absent or not a
// number. JSON numbers decode as float64.
func (r RawResponse) FloatAt(def float64, path ...string) float64 {
	if f, ok := r.GetPath(path...).(float64); ok {
		return f
	}
	return def
}

// StringAt returns the string at the given path, or def when absent
func (r RawResponse) StringAt(def string, path ...string) string {
	if s, ok := r.GetPath(path...).(string); ok {
		return s
	}
	return def
}
