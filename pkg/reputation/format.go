package reputation

import (
	"fmt"
	"strings"
)

// FormatHitsForAnalysis renders search hits into a single text block suitable
// as model input context. Hits are emitted in input order, which preserves the
// query-template order produced by the search aggregation step.
func FormatHitsForAnalysis(hits []SearchHit, businessName string) string {
	if len(hits) == 0 {
		return fmt.Sprintf("No negative mentions found for %s in web search.", businessName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Web search results for negative mentions of '%s':\n\n", businessName)

	for i, hit := range hits {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, hit.Title)
		fmt.Fprintf(&b, "   Source: %s\n", hit.Link)
		fmt.Fprintf(&b, "   Content: %s\n", hit.Snippet)
		fmt.Fprintf(&b, "   Search Query: %s\n\n", hit.SearchQuery)
	}

	return b.String()
}
