package llmretry

import "strings"

// defaultRPM is the requests-per-minute budget used when neither an
// explicit rpm option nor a model table entry applies.
const defaultRPM = 2000

// defaultModelRPM holds known per-minute request budgets for common
// provider default tiers. Explicit WithRPM always wins over this table.
var defaultModelRPM = map[string]int{
	"gpt-3.5-turbo":           500,
	"gpt-4":                   200,
	"gemini-pro":              600,
	"claude-2":                400,
	"gemini/gemini-2.0-flash": 2000,
}

// lookupModelRPM resolves the budget for a model: exact match first, then
// a partial match against the provider-stripped model name, then
// defaultRPM.
func lookupModelRPM(model string) int {
	if rpm, ok := defaultModelRPM[model]; ok {
		return rpm
	}

	// Strip a "provider/" prefix, e.g. "gemini/gemini-2.0-flash".
	base := model
	if i := strings.LastIndex(model, "/"); i >= 0 {
		base = model[i+1:]
	}

	for prefix, rpm := range defaultModelRPM {
		if strings.Contains(base, prefix) {
			return rpm
		}
	}

	return defaultRPM
}
