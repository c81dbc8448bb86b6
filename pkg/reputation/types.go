// Package reputation defines the canonical data model shared by all provider
// adapters and the analysis engine, plus the pure helpers that operate on it.
package reputation

// BusinessRecord is the common shape every provider adapter produces.
// Missing vendor fields are carried as nil, never omitted.
//
// Rating is on the provider's native scale (0.0-5.0 for all currently wired
// vendors); scales are not reconciled across providers.
type BusinessRecord struct {
	Name         *string        `json:"name"`
	Address      *string        `json:"address"`
	Rating       *float64       `json:"rating"`
	ReviewsCount *int           `json:"reviews_count"`
	Website      *string        `json:"website,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	Reviews      []ReviewRecord `json:"reviews"`
}

// ReviewRecord is a single customer review attached to a business.
// Date is the provider-native timestamp string, passed through uninterpreted.
type ReviewRecord struct {
	Author *string  `json:"author"`
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
	Date   *string  `json:"date"`
}

// SearchHit is one web-search result that passed the negative-signal filter.
type SearchHit struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	SearchQuery string `json:"search_query"`
	Source      string `json:"source"`
}

// Risk levels reported by the analysis engine.
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
	RiskUnknown  = "Unknown"
)

// SourceBreakdown summarizes per-source evidence counts inside a Report.
type SourceBreakdown struct {
	WebMentions       string `json:"web_mentions"`
	TrustpilotReviews string `json:"trustpilot_reviews"`
}

// Report is the structured risk assessment produced by the analysis engine.
// Error is set only on failure paths; RiskLevel is "Unknown" when the
// underlying model call failed and "unknown" when no model is configured.
type Report struct {
	RiskLevel          string          `json:"risk_level"`
	Summary            string          `json:"summary"`
	KeyIssues          []string        `json:"key_issues"`
	ConcerningPatterns []string        `json:"concerning_patterns"`
	Recommendations    []string        `json:"recommendations"`
	PositiveAspects    []string        `json:"positive_aspects"`
	SourceBreakdown    SourceBreakdown `json:"source_breakdown"`
	Error              *string         `json:"error,omitempty"`
}

// NewBusinessRecord returns a record with all canonical fields present and an
// empty (non-nil) review list, ready for adapter field mapping.
func NewBusinessRecord() BusinessRecord {
	return BusinessRecord{
		Reviews: []ReviewRecord{},
	}
}
