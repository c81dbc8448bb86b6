package analysis

import "testing"

func TestRiskLevelColor(t *testing.T) {
	tests := []struct {
		name      string
		riskLevel string
		want      string
	}{
		{name: "low", riskLevel: "Low", want: "text-green-400"},
		{name: "critical", riskLevel: "Critical", want: "text-red-400"},
		{name: "unknown", riskLevel: "Unknown", want: "text-gray-400"},
		{name: "unrecognized falls back", riskLevel: "unknown", want: "text-gray-400"},
		{name: "empty falls back", riskLevel: "", want: "text-gray-400"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RiskLevelColor(tc.riskLevel); got != tc.want {
				t.Fatalf("RiskLevelColor(%q) = %q, want %q", tc.riskLevel, got, tc.want)
			}
		})
	}
}

func TestRiskLevelBackground(t *testing.T) {
	if got := RiskLevelBackground("High"); got != "bg-orange-900/20 border-orange-500" {
		t.Fatalf("RiskLevelBackground(High) = %q", got)
	}
	if got := RiskLevelBackground("nonsense"); got != "bg-gray-900/20 border-gray-500" {
		t.Fatalf("RiskLevelBackground(nonsense) = %q", got)
	}
}
