package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/lexaudit/internal/model"
)

// Term caps and weights
const (
	MaxScore = 100.0

	pointsPerMissingClause = 10.0
	missingClauseCap       = 40.0

	pointsNoLiabilityCap     = 8.0
	pointsNoIndemnity        = 7.0
	pointsUnclearPayment     = 10.0
	pointsUnclearTermination = 5.0
	pointsPerHedgeWord       = 2.0
	hedgeWordCap             = 10.0
	pointsPerVaguePhrase     = 1.0
	vaguePhraseCap           = 10.0

	pointsPerFailedCheck = 5.0
	complianceCap        = 30.0
)

// Scorer calculates the risk score and explains every term
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate combines the detector outputs into a bounded risk score
func (s *Scorer) Calculate(missing []string, risks model.RiskFactors, compliance model.ComplianceResult) model.Score {
	missingPoints, missingSignal := s.missingClauses(missing)
	riskPoints, riskSignal := s.riskFactors(risks)
	compliancePoints, complianceSignal := s.compliance(compliance)

	total := clamp(missingPoints+riskPoints+compliancePoints, 0, MaxScore)

	return model.Score{
		Value:   total,
		Signals: []model.Signal{missingSignal, riskSignal, complianceSignal},
	}
}

// missingClauses scores absent mandatory clauses (0-40 points)
func (s *Scorer) missingClauses(missing []string) (float64, model.Signal) {
	points := math.Min(float64(len(missing))*pointsPerMissingClause, missingClauseCap)

	return points, model.Signal{
		Type:        model.SignalMissingClauses,
		Points:      points,
		Cap:         missingClauseCap,
		Description: fmt.Sprintf("%d mandatory clause(s) missing", len(missing)),
		Data: map[string]interface{}{
			"missing": len(missing),
			"formula": "min(missing_count * 10, 40)",
		},
	}
}

// riskFactors scores unclear terms and weak wording.
// The term has no cap of its own; its parts are capped and the total is clamped.
func (s *Scorer) riskFactors(rf model.RiskFactors) (float64, model.Signal) {
	var points float64
	if rf.NoLiabilityCap {
		points += pointsNoLiabilityCap
	}
	if rf.NoIndemnity {
		points += pointsNoIndemnity
	}
	if rf.UnclearPayment {
		points += pointsUnclearPayment
	}
	if rf.UnclearTermination {
		points += pointsUnclearTermination
	}

	hedgePoints := math.Min(float64(len(rf.HedgeWordsFound))*pointsPerHedgeWord, hedgeWordCap)
	vaguePoints := math.Min(float64(len(rf.VaguePhrasesFound))*pointsPerVaguePhrase, vaguePhraseCap)
	points += hedgePoints + vaguePoints

	return points, model.Signal{
		Type:   model.SignalRiskFactors,
		Points: points,
		Description: fmt.Sprintf("%d hedge word(s), %d vague phrase(s), %d unclear-term flag(s)",
			len(rf.HedgeWordsFound), len(rf.VaguePhrasesFound), countFlags(rf)),
		Data: map[string]interface{}{
			"no_liability_cap":    rf.NoLiabilityCap,
			"no_indemnity":        rf.NoIndemnity,
			"unclear_payment":     rf.UnclearPayment,
			"unclear_termination": rf.UnclearTermination,
			"hedge_points":        hedgePoints,
			"vague_points":        vaguePoints,
			"formula":             "8*no_liability_cap + 7*no_indemnity + 10*unclear_payment + 5*unclear_termination + min(hedge*2, 10) + min(vague, 10)",
		},
	}
}

// compliance scores failed statutory checks (0-30 points). Warnings do not count.
func (s *Scorer) compliance(result model.ComplianceResult) (float64, model.Signal) {
	fails := result.Count(model.StatusFail)
	points := math.Min(float64(fails)*pointsPerFailedCheck, complianceCap)

	return points, model.Signal{
		Type:        model.SignalCompliance,
		Points:      points,
		Cap:         complianceCap,
		Description: fmt.Sprintf("%d failed, %d warning compliance check(s)", fails, result.Count(model.StatusWarn)),
		Data: map[string]interface{}{
			"failed":   fails,
			"warnings": result.Count(model.StatusWarn),
			"overall":  string(result.OverallStatus),
			"formula":  "min(fail_count * 5, 30)",
		},
	}
}

func countFlags(rf model.RiskFactors) int {
	n := 0
	for _, f := range []bool{rf.NoLiabilityCap, rf.NoIndemnity, rf.UnclearPayment, rf.UnclearTermination} {
		if f {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
