package reputation

import "strings"

// negativeKeywords is the fixed vocabulary used to classify a search result as
// potentially negative. Matching is a boolean OR over case-insensitive
// substring tests.
var negativeKeywords = []string{
	"complaint", "scam", "fraud", "terrible", "awful", "worst", "horrible",
	"bad", "negative", "poor", "disappointing", "unprofessional", "rude",
	"dishonest", "avoid", "warning", "beware", "lawsuit", "legal action",
	"refund", "money back", "rip off", "ripoff", "stolen", "theft",
}

// IsPotentiallyNegative reports whether text contains at least one term from
// the negative-sentiment vocabulary, ignoring case.
func IsPotentiallyNegative(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range negativeKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
