package extract

import (
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

var (
	hedgeWords   = []string{"best effort", "reasonable", "as soon as practicable", "approximately", "about", "may", "could"}
	vaguePhrases = []string{"subject to", "unless otherwise", "to the extent", "as applicable"}
)

// HedgeWords returns the hedge-word list
func HedgeWords() []string { return append([]string(nil), hedgeWords...) }

// VaguePhrases returns the vague-phrase list
func VaguePhrases() []string { return append([]string(nil), vaguePhrases...) }

// RiskAnalyzer scans contract text for weak or unclear drafting
type RiskAnalyzer struct {
	hedgeWords   []string
	vaguePhrases []string
}

// NewRiskAnalyzer creates an analyzer over the built-in word lists
func NewRiskAnalyzer() *RiskAnalyzer {
	return &RiskAnalyzer{
		hedgeWords:   hedgeWords,
		vaguePhrases: vaguePhrases,
	}
}

// Analyze runs every risk check independently over the same text
func (a *RiskAnalyzer) Analyze(text string) model.RiskFactors {
	lower := strings.ToLower(text)
	has := func(s string) bool { return strings.Contains(lower, s) }

	return model.RiskFactors{
		HedgeWordsFound:    present(lower, a.hedgeWords),
		VaguePhrasesFound:  present(lower, a.vaguePhrases),
		UnclearPayment:     has("payment") && (has("tbd") || has("to be determined")),
		NoLiabilityCap:     has("liability") && !has("limited") && !has("cap"),
		NoIndemnity:        !has("indemnity"),
		UnclearTermination: has("termination") && !has("30 days") && !has("notice"),
	}
}

// present returns the phrases found in lower, in list order
func present(lower string, phrases []string) []string {
	found := []string{}
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			found = append(found, p)
		}
	}
	return found
}
