package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type report struct {
		RiskLevel string `json:"risk_level"`
		Summary   string `json:"summary,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  report
	}{
		{
			name:  "valid json object",
			input: `{"risk_level":"High"}`,
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{risk_level: 'High'}`,
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "trailing comma",
			input: `{"risk_level":"High",}`,
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "missing endbracket",
			input: `{"risk_level":"High`,
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{risk_level: 'High'}"`,
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"risk_level\": \"High\"\n}\n",
			want:  report{RiskLevel: "High"},
		},
		{
			name:  "markdown fence content stringified",
			input: `"{\n  \"risk_level\": \"Low\",\n  \"summary\": \"Nothing concerning found.\"\n}"`,
			want:  report{RiskLevel: "Low", Summary: "Nothing concerning found."},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got report
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.RiskLevel != tc.want.RiskLevel || got.Summary != tc.want.Summary {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	type report struct {
		RiskLevel string `json:"risk_level"`
	}

	var got report
	if err := UnmarshalFlexible("the business looks risky to me", &got); err == nil {
		t.Fatalf("UnmarshalFlexible() expected error for unrecoverable input")
	}
}
