package extract

import (
	"testing"

	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRiskAnalyzer_EmptyText(t *testing.T) {
	got := NewRiskAnalyzer().Analyze("")

	assert.Equal(t, model.RiskFactors{
		HedgeWordsFound:   []string{},
		VaguePhrasesFound: []string{},
		NoIndemnity:       true,
	}, got)
}

func TestRiskAnalyzer_Flags(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, rf model.RiskFactors)
	}{
		{"payment tbd", "Payment amount TBD", func(t *testing.T, rf model.RiskFactors) {
			assert.True(t, rf.UnclearPayment)
		}},
		{"payment to be determined", "the payment is to be determined later", func(t *testing.T, rf model.RiskFactors) {
			assert.True(t, rf.UnclearPayment)
		}},
		{"tbd without payment", "Start date TBD", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.UnclearPayment)
		}},
		{"uncapped liability", "Liability of each party extends to all losses", func(t *testing.T, rf model.RiskFactors) {
			assert.True(t, rf.NoLiabilityCap)
		}},
		{"limited liability", "Liability shall be limited to fees paid", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.NoLiabilityCap)
		}},
		{"liability cap", "Aggregate liability cap of one month fees", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.NoLiabilityCap)
		}},
		{"indemnity present", "Mutual INDEMNITY applies", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.NoIndemnity)
		}},
		{"termination at will", "Termination at will", func(t *testing.T, rf model.RiskFactors) {
			assert.True(t, rf.UnclearTermination)
		}},
		{"termination with notice", "Termination with written notice", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.UnclearTermination)
		}},
		{"termination after 30 days", "termination takes effect after 30 days", func(t *testing.T, rf model.RiskFactors) {
			assert.False(t, rf.UnclearTermination)
		}},
	}

	a := NewRiskAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, a.Analyze(tt.text))
		})
	}
}

func TestRiskAnalyzer_HedgeWordsInListOrder(t *testing.T) {
	rf := NewRiskAnalyzer().Analyze("The vendor may use best efforts at a reasonable price")

	assert.Equal(t, []string{"best effort", "reasonable", "may"}, rf.HedgeWordsFound)
	assert.Empty(t, rf.VaguePhrasesFound)
}

func TestRiskAnalyzer_VaguePhrases(t *testing.T) {
	rf := NewRiskAnalyzer().Analyze("Subject to clause 4, unless otherwise agreed")

	assert.Equal(t, []string{"subject to", "unless otherwise"}, rf.VaguePhrasesFound)
}

func TestRiskAnalyzer_AllChecksRunIndependently(t *testing.T) {
	text := "Payment TBD. Liability unrestricted. Termination anytime. " +
		"Approximately, about, could. To the extent as applicable."

	rf := NewRiskAnalyzer().Analyze(text)

	assert.True(t, rf.UnclearPayment)
	assert.True(t, rf.NoLiabilityCap)
	assert.True(t, rf.NoIndemnity)
	assert.True(t, rf.UnclearTermination)
	assert.Equal(t, []string{"approximately", "about", "could"}, rf.HedgeWordsFound)
	assert.Equal(t, []string{"to the extent", "as applicable"}, rf.VaguePhrasesFound)
}

func TestWordListsAreCopies(t *testing.T) {
	hw := HedgeWords()
	hw[0] = "changed"
	assert.Equal(t, "best effort", hedgeWords[0])
	assert.Len(t, VaguePhrases(), 4)
}
