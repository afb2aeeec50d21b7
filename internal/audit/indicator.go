package audit

// Indicator classifies a 0-100 score into the traffic-light buckets used
// throughout the console report.
type Indicator string

const (
	IndicatorGreen  Indicator = "green"
	IndicatorYellow Indicator = "yellow"
	IndicatorRed    Indicator = "red"
)

// ScoreIndicator maps a 0-100 score to an indicator: green when >= 90,
// yellow when >= 50, red otherwise. Per-metric 0-1 sub-scores must be scaled
// x100 before lookup.
func ScoreIndicator(score float64) Indicator {
	switch {
	case score >= 90:
		return IndicatorGreen
	case score >= 50:
		return IndicatorYellow
	default:
		return IndicatorRed
	}
}

// Symbol returns the glyph rendered for the indicator
func (i Indicator) Symbol() string {
	switch i {
	case IndicatorGreen:
		return "🟢"
	case IndicatorYellow:
		return "🟡"
	default:
		return "🔴"
	}
}
