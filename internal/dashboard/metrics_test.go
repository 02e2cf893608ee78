package dashboard

import (
	"bytes"
	"testing"

	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(t model.ContractType, score float64, status model.CheckStatus, clauses ...string) *model.VerificationResult {
	r := &model.VerificationResult{
		ContractType: t,
		RiskScore:    score,
		Compliance:   model.ComplianceResult{OverallStatus: status},
	}
	for _, c := range clauses {
		r.Findings = append(r.Findings, model.Finding{Clause: c, Severity: model.SeverityHigh})
	}
	return r
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil)

	assert.Equal(t, 0, d.Documents)
	assert.Equal(t, 0.0, d.AverageRisk)
	assert.Len(t, d.Histogram, 5)
	assert.Empty(t, d.TopClauses)
	assert.NotNil(t, d.TopClauses)
	assert.Empty(t, d.RiskByType)
}

func TestBuild_Histogram(t *testing.T) {
	d := Build([]*model.VerificationResult{
		result(model.ContractNDA, 0, model.StatusPass),
		result(model.ContractNDA, 30, model.StatusPass),
		result(model.ContractNDA, 31, model.StatusPass),
		result(model.ContractNDA, 70, model.StatusPass),
		result(model.ContractNDA, 86, model.StatusPass),
		result(model.ContractNDA, 100, model.StatusPass),
	})

	counts := make(map[string]int)
	for _, b := range d.Histogram {
		counts[b.Range] = b.Count
	}
	assert.Equal(t, map[string]int{"0-30": 2, "31-50": 1, "51-70": 1, "71-85": 0, "86-100": 2}, counts)
	assert.Equal(t, "low", d.Histogram[0].Label)
}

func TestBuild_AveragesAndCompliance(t *testing.T) {
	d := Build([]*model.VerificationResult{
		result(model.ContractNDA, 20, model.StatusPass),
		result(model.ContractNDA, 40, model.StatusWarn),
		result(model.ContractLease, 90, model.StatusFail),
		nil,
	})

	assert.Equal(t, 3, d.Documents)
	assert.InDelta(t, 50.0, d.AverageRisk, 1e-9)
	assert.Equal(t, map[model.ContractType]float64{model.ContractNDA: 30, model.ContractLease: 90}, d.RiskByType)
	assert.Equal(t, 1, d.ComplianceCount[model.StatusPass])
	assert.Equal(t, 1, d.ComplianceCount[model.StatusWarn])
	assert.Equal(t, 1, d.ComplianceCount[model.StatusFail])
}

func TestBuild_TopClauses(t *testing.T) {
	d := Build([]*model.VerificationResult{
		result(model.ContractGeneric, 10, model.StatusPass, "Parties", "Term", "GST"),
		result(model.ContractGeneric, 10, model.StatusPass, "Term", "Signatures", "Payment"),
		result(model.ContractGeneric, 10, model.StatusPass, "Term", "Liability", "Governing Law"),
		result(model.ContractGeneric, 10, model.StatusPass, "GST"),
	})

	require.Len(t, d.TopClauses, TopClauseLimit)
	assert.Equal(t, ClauseCount{Clause: "Term", Count: 3}, d.TopClauses[0])
	assert.Equal(t, ClauseCount{Clause: "GST", Count: 2}, d.TopClauses[1])
	// ties keep first-occurrence order
	assert.Equal(t, []string{"Parties", "Signatures", "Payment"}, []string{
		d.TopClauses[2].Clause, d.TopClauses[3].Clause, d.TopClauses[4].Clause,
	})
}

func TestDigest_Fprint(t *testing.T) {
	d := Build([]*model.VerificationResult{
		result(model.ContractService, 37, model.StatusWarn, "GST"),
	})

	var out bytes.Buffer
	d.Fprint(&out)

	assert.Contains(t, out.String(), "Documents:     1")
	assert.Contains(t, out.String(), "31-50")
	assert.Contains(t, out.String(), "1. GST (1)")
	assert.Contains(t, out.String(), "service     37.0")
	assert.Contains(t, out.String(), "Compliance: 0 pass, 1 warn, 0 fail")
}
