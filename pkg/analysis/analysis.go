// Package analysis turns aggregated reputation evidence into a structured
// risk report via a model completion plus a deterministic fallback.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/repradar/backend/pkg/ai"
	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/reputation"
)

const (
	// analysisTemperature favors determinism over creativity.
	analysisTemperature = 0.3

	// analysisMaxTokens bounds the completion length.
	analysisMaxTokens = 1500

	// maxContextTokens bounds the evidence block embedded in the prompt.
	// Reviews are dropped from the end until the context fits.
	maxContextTokens = 6000
)

// Analyzer builds reputation risk reports from search hits and reviews.
// A nil client means no model is configured; analysis then degrades to a
// placeholder report instead of failing.
type Analyzer struct {
	client ai.CompletionClient
}

// NewAnalyzer creates an Analyzer backed by the given completion client,
// which may be nil when no model credential is configured.
func NewAnalyzer(client ai.CompletionClient) *Analyzer {
	return &Analyzer{
		client: client,
	}
}

// Configured reports whether a completion client is available.
func (a *Analyzer) Configured() bool {
	return a.client != nil
}

// AnalyzeReputation produces a risk report for the business from formatted
// search results and optional review records. It never returns an error:
// every failure path degrades to a well-typed report.
func (a *Analyzer) AnalyzeReputation(
	ctx context.Context,
	businessName string,
	searchResults string,
	reviews []reputation.ReviewRecord,
) reputation.Report {
	if a.client == nil {
		logger.Error("No model configured for reputation analysis")
		return unconfiguredReport()
	}

	evidence := buildContext(businessName, searchResults, reviews)
	prompt := fmt.Sprintf(userPromptTemplate, businessName, evidence)

	logger.Info("Sending reputation analysis request", "business", businessName)

	raw, err := a.client.GenerateCompletion(
		ctx,
		prompt,
		ai.WithSystemPrompts(SystemPrompt),
		ai.WithTemperature(analysisTemperature),
		ai.WithMaxTokens(analysisMaxTokens),
	)
	if err != nil {
		logger.Error("Reputation analysis failed", "business", businessName, "err", err)
		return errorReport(err)
	}

	logger.Info("Received reputation analysis", "business", businessName)

	report, err := parseReport(raw)
	if err != nil {
		logger.Warn("Model output was not valid structured data, using fallback report", "err", err)
		return fallbackReport(raw)
	}
	return report
}

// buildContext renders the evidence block embedded in the analysis prompt.
// The review section is token-budgeted: trailing reviews are dropped until
// the whole block fits maxContextTokens.
func buildContext(businessName, searchResults string, reviews []reputation.ReviewRecord) string {
	render := func(reviews []reputation.ReviewRecord) string {
		var b strings.Builder
		fmt.Fprintf(&b, "Business Name: %s\n\n", businessName)
		b.WriteString("=== WEB SEARCH RESULTS ===\n")
		b.WriteString(searchResults)

		if len(reviews) > 0 {
			b.WriteString("\n\n=== TRUSTPILOT REVIEWS ===\n")
			for _, review := range reviews {
				fmt.Fprintf(&b, "Rating: %s/5\n", stringOrDefault(formatRating(review.Rating), "N/A"))
				fmt.Fprintf(&b, "Author: %s\n", stringOrDefault(deref(review.Author), "Anonymous"))
				fmt.Fprintf(&b, "Review: %s\n", deref(review.Text))
				fmt.Fprintf(&b, "Date: %s\n\n", deref(review.Date))
			}
		}
		return b.String()
	}

	rendered := render(reviews)
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		// Token budgeting is best-effort; fall back to the full block.
		return rendered
	}

	for len(reviews) > 0 && len(enc.Encode(rendered, nil, nil)) > maxContextTokens {
		reviews = reviews[:len(reviews)-1]
		rendered = render(reviews)
	}
	return rendered
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringOrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", *r), "0"), ".")
}
