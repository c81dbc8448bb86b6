package analysis

import (
	"github.com/repradar/backend/pkg/ai"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	// fallbackSummaryLimit is how many characters of raw model output the
	// fallback report keeps before appending an ellipsis marker.
	fallbackSummaryLimit = 500
)

// parseReport parses raw model output into a structured report. Parsing is
// tolerant of the usual model JSON defects (fencing, trailing commas,
// double encoding); anything still unparseable is returned as an error so
// the caller can build the deterministic fallback.
func parseReport(raw string) (reputation.Report, error) {
	var report reputation.Report
	if err := ai.UnmarshalFlexible(raw, &report); err != nil {
		return reputation.Report{}, err
	}

	// Model output may omit list fields. Keep the contract: present, empty.
	if report.KeyIssues == nil {
		report.KeyIssues = []string{}
	}
	if report.ConcerningPatterns == nil {
		report.ConcerningPatterns = []string{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}
	if report.PositiveAspects == nil {
		report.PositiveAspects = []string{}
	}
	return report, nil
}

// fallbackReport builds the degraded report used when model output does not
// parse as structured data. It never fails and is never empty.
func fallbackReport(raw string) reputation.Report {
	summary := raw
	if runes := []rune(raw); len(runes) > fallbackSummaryLimit {
		summary = string(runes[:fallbackSummaryLimit]) + "..."
	}

	return reputation.Report{
		RiskLevel:          reputation.RiskMedium,
		Summary:            summary,
		KeyIssues:          []string{"Analysis provided in summary"},
		ConcerningPatterns: []string{},
		Recommendations:    []string{"Review detailed analysis in summary"},
		PositiveAspects:    []string{},
		SourceBreakdown: reputation.SourceBreakdown{
			WebMentions:       "See summary for details",
			TrustpilotReviews: "See summary for details",
		},
	}
}

// errorReport builds the degraded report used when the model call itself
// failed.
func errorReport(err error) reputation.Report {
	msg := err.Error()
	return reputation.Report{
		RiskLevel:          reputation.RiskUnknown,
		Summary:            "Error occurred during AI analysis: " + msg,
		KeyIssues:          []string{"Analysis failed due to technical error"},
		ConcerningPatterns: []string{},
		Recommendations:    []string{"Contact support to resolve analysis issue"},
		PositiveAspects:    []string{},
		SourceBreakdown: reputation.SourceBreakdown{
			WebMentions:       "Analysis failed",
			TrustpilotReviews: "Analysis failed",
		},
		Error: &msg,
	}
}

// unconfiguredReport is returned when no model credential is available.
// This is a configuration-error path, not a runtime failure.
func unconfiguredReport() reputation.Report {
	msg := "OpenAI API key not configured"
	return reputation.Report{
		RiskLevel:          "unknown",
		Summary:            "Unable to perform AI analysis. Please check OpenAI API configuration.",
		KeyIssues:          []string{},
		ConcerningPatterns: []string{},
		Recommendations:    []string{},
		PositiveAspects:    []string{},
		SourceBreakdown:    reputation.SourceBreakdown{},
		Error:              &msg,
	}
}
