package findings

import (
	"fmt"

	"github.com/ppiankov/lexaudit/internal/extract"
	"github.com/ppiankov/lexaudit/internal/model"
)

const (
	// MaxSuggestions caps the suggestion list
	MaxSuggestions = 10

	// lawyerReviewThreshold is the finding count above which a review is recommended
	lawyerReviewThreshold = 5

	LawyerReviewSuggestion = "Consider having a lawyer review this contract before signing"
)

// Compose turns detector output into ordered findings:
// missing clauses first, then risk factors, then compliance checks
func Compose(missing []string, rf model.RiskFactors, compliance model.ComplianceResult) []model.Finding {
	out := []model.Finding{}

	for _, id := range missing {
		severity := model.SeverityHigh
		if extract.IsCriticalClause(id) {
			severity = model.SeverityCritical
		}
		out = append(out, model.Finding{
			Clause:     extract.ClauseLabel(id),
			Issue:      fmt.Sprintf("Missing mandatory clause: %s", id),
			Severity:   severity,
			Suggestion: fmt.Sprintf("Add a clear %s clause to the contract", id),
		})
	}

	if rf.UnclearPayment {
		out = append(out, model.Finding{
			Clause:     "Payment Terms",
			Issue:      "Payment terms are unclear or TBD",
			Severity:   model.SeverityHigh,
			Suggestion: "Specify exact payment amounts, timelines, and methods",
		})
	}
	if rf.NoLiabilityCap {
		out = append(out, model.Finding{
			Clause:     "Liability",
			Issue:      "No liability cap or limitation clause",
			Severity:   model.SeverityMedium,
			Suggestion: "Add a limitation of liability clause with reasonable caps",
		})
	}

	for _, c := range compliance.Checks {
		var severity model.Severity
		switch c.Status {
		case model.StatusFail:
			severity = model.SeverityHigh
		case model.StatusWarn:
			severity = model.SeverityMedium
		default:
			continue
		}
		out = append(out, model.Finding{
			Clause:     c.Category,
			Issue:      c.Message,
			Severity:   severity,
			Suggestion: c.Message,
		})
	}

	return out
}

// Suggest derives remediation strings from critical and high findings, earliest first,
// adding a lawyer-review suggestion when there are many findings. Each string appears once.
func Suggest(findings []model.Finding) []string {
	out := []string{}
	seen := make(map[string]bool)

	for _, f := range findings {
		if !f.Severity.Actionable() {
			continue
		}
		s := fmt.Sprintf("Add %s: %s", f.Clause, f.Suggestion)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	if len(findings) > lawyerReviewThreshold {
		out = append(out, LawyerReviewSuggestion)
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
