package findings

import (
	"testing"

	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_Empty(t *testing.T) {
	got := Compose(nil, model.RiskFactors{}, model.NewComplianceResult("IN", nil))

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Suggest(got))
}

func TestCompose_Order(t *testing.T) {
	compliance := model.NewComplianceResult("IN", []model.ComplianceCheck{
		{Category: "GST", Status: model.StatusWarn, Message: "GST missing", Citation: "GST Act, 2017"},
		{Category: "TDS", Status: model.StatusPass, Message: "TDS ok"},
		{Category: "MSME Act", Status: model.StatusFail, Message: "MSME broken"},
	})
	rf := model.RiskFactors{UnclearPayment: true, NoLiabilityCap: true, NoIndemnity: true, UnclearTermination: true}

	got := Compose([]string{"governing_law", "parties"}, rf, compliance)

	require.Len(t, got, 6)
	assert.Equal(t, model.Finding{
		Clause:     "Governing Law",
		Issue:      "Missing mandatory clause: governing_law",
		Severity:   model.SeverityHigh,
		Suggestion: "Add a clear governing_law clause to the contract",
	}, got[0])
	assert.Equal(t, "Parties", got[1].Clause)
	assert.Equal(t, model.SeverityCritical, got[1].Severity)
	assert.Equal(t, "Payment Terms", got[2].Clause)
	assert.Equal(t, model.SeverityHigh, got[2].Severity)
	assert.Equal(t, "Liability", got[3].Clause)
	assert.Equal(t, model.SeverityMedium, got[3].Severity)
	assert.Equal(t, model.Finding{Clause: "GST", Issue: "GST missing", Severity: model.SeverityMedium, Suggestion: "GST missing"}, got[4])
	assert.Equal(t, "MSME Act", got[5].Clause)
	assert.Equal(t, model.SeverityHigh, got[5].Severity)
}

func TestCompose_IndemnityAndTerminationProduceNoFindings(t *testing.T) {
	got := Compose(nil, model.RiskFactors{NoIndemnity: true, UnclearTermination: true}, model.NewComplianceResult("IN", nil))

	assert.Empty(t, got)
}

func TestSuggest_OnlyActionableFindings(t *testing.T) {
	findings := []model.Finding{
		{Clause: "Parties", Suggestion: "Add a clear parties clause to the contract", Severity: model.SeverityCritical},
		{Clause: "Liability", Suggestion: "cap it", Severity: model.SeverityMedium},
		{Clause: "Payment Terms", Suggestion: "Specify amounts", Severity: model.SeverityHigh},
		{Clause: "Note", Suggestion: "fyi", Severity: model.SeverityLow},
	}

	got := Suggest(findings)

	assert.Equal(t, []string{
		"Add Parties: Add a clear parties clause to the contract",
		"Add Payment Terms: Specify amounts",
	}, got)
}

func TestSuggest_LawyerReviewAboveFiveFindings(t *testing.T) {
	five := make([]model.Finding, 5)
	for i := range five {
		five[i] = model.Finding{Clause: "Liability", Suggestion: "x", Severity: model.SeverityMedium}
	}
	assert.Empty(t, Suggest(five))

	six := append(five, model.Finding{Clause: "GST", Suggestion: "y", Severity: model.SeverityMedium})
	assert.Equal(t, []string{LawyerReviewSuggestion}, Suggest(six))
}

func TestSuggest_CapsAtTenEarliestFirst(t *testing.T) {
	var findings []model.Finding
	for i := 0; i < 12; i++ {
		findings = append(findings, model.Finding{Clause: string(rune('A' + i)), Suggestion: "fix", Severity: model.SeverityHigh})
	}

	got := Suggest(findings)

	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, "Add A: fix", got[0])
	assert.Equal(t, "Add J: fix", got[9])
	assert.NotContains(t, got, LawyerReviewSuggestion)
}

func TestSuggest_DeduplicatesRepeatedFindings(t *testing.T) {
	stamp := model.Finding{Clause: "Stamp Duty", Suggestion: "Stamp duty not addressed", Severity: model.SeverityHigh}
	gst := model.Finding{Clause: "GST", Suggestion: "GST registration not addressed", Severity: model.SeverityHigh}

	got := Suggest([]model.Finding{stamp, gst, stamp, stamp})

	assert.Equal(t, []string{
		"Add Stamp Duty: Stamp duty not addressed",
		"Add GST: GST registration not addressed",
	}, got)
}

func TestSuggest_DuplicatesDoNotCrowdOutLaterFindings(t *testing.T) {
	var findings []model.Finding
	for i := 0; i < 12; i++ {
		findings = append(findings, model.Finding{Clause: "Stamp Duty", Suggestion: "fix", Severity: model.SeverityCritical})
	}
	findings = append(findings, model.Finding{Clause: "Signatures", Suggestion: "sign", Severity: model.SeverityCritical})

	got := Suggest(findings)

	assert.Equal(t, []string{
		"Add Stamp Duty: fix",
		"Add Signatures: sign",
		LawyerReviewSuggestion,
	}, got)
}

func TestSuggest_IsDerivedFromFindingsOnly(t *testing.T) {
	// suggestions text reads like a contract but Suggest only looks at Finding values
	first := Suggest(Compose([]string{"parties"}, model.RiskFactors{}, model.NewComplianceResult("IN", nil)))

	var fromSuggestions []model.Finding
	for _, s := range first {
		fromSuggestions = append(fromSuggestions, model.Finding{Clause: s, Suggestion: s, Severity: model.SeverityLow})
	}

	assert.Empty(t, Suggest(fromSuggestions))
	assert.Equal(t, []string{"Add Parties: Add a clear parties clause to the contract"}, first)
}
