package analysis

// Presentation classes keyed by risk level, used to decorate a report for
// the UI.

var riskColors = map[string]string{
	"Low":      "text-green-400",
	"Medium":   "text-yellow-400",
	"High":     "text-orange-400",
	"Critical": "text-red-400",
	"Unknown":  "text-gray-400",
}

var riskBackgrounds = map[string]string{
	"Low":      "bg-green-900/20 border-green-500",
	"Medium":   "bg-yellow-900/20 border-yellow-500",
	"High":     "bg-orange-900/20 border-orange-500",
	"Critical": "bg-red-900/20 border-red-500",
	"Unknown":  "bg-gray-900/20 border-gray-500",
}

// RiskLevelColor returns the text color class for a risk level.
func RiskLevelColor(riskLevel string) string {
	if color, ok := riskColors[riskLevel]; ok {
		return color
	}
	return riskColors["Unknown"]
}

// RiskLevelBackground returns the background color class for a risk level.
func RiskLevelBackground(riskLevel string) string {
	if bg, ok := riskBackgrounds[riskLevel]; ok {
		return bg
	}
	return riskBackgrounds["Unknown"]
}
