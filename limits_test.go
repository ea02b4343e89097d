package llmretry

import "testing"

func TestLookupModelRPMExactMatch(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"gpt-3.5-turbo", 500},
		{"gpt-4", 200},
		{"gemini-pro", 600},
		{"claude-2", 400},
		{"gemini/gemini-2.0-flash", 2000},
	}

	for _, tt := range tests {
		if got := lookupModelRPM(tt.model); got != tt.want {
			t.Fatalf("lookupModelRPM(%q) = %d, want %d", tt.model, got, tt.want)
		}
	}
}

func TestLookupModelRPMPartialMatch(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"openai/gpt-4", 200},
		{"anthropic/claude-2.1", 400},
	}

	for _, tt := range tests {
		if got := lookupModelRPM(tt.model); got != tt.want {
			t.Fatalf("lookupModelRPM(%q) = %d, want %d", tt.model, got, tt.want)
		}
	}
}

func TestLookupModelRPMUnknownFallsBack(t *testing.T) {
	if got := lookupModelRPM("some-new-model"); got != defaultRPM {
		t.Fatalf("lookupModelRPM(unknown) = %d, want %d", got, defaultRPM)
	}
}
