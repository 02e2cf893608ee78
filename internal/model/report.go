package model

import "fmt"

// VerificationResult is the complete output of one verification run.
// It carries no timestamps so that identical inputs produce identical results.
type VerificationResult struct {
	ContractType   ContractType     `json:"contract_type"`
	Jurisdiction   string           `json:"jurisdiction"`
	Metadata       Metadata         `json:"metadata"`
	RiskScore      float64          `json:"risk_score"` // 0-100, higher = riskier
	Findings       []Finding        `json:"findings"`
	Suggestions    []string         `json:"suggestions"`
	MissingClauses []string         `json:"missing_clauses"`
	RiskFactors    RiskFactors      `json:"risk_factors"`
	Compliance     ComplianceResult `json:"compliance"`
	Score          Score            `json:"score"` // Transparent breakdown of RiskScore
	Principles     Principles       `json:"principles"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional plain-language summary, never affects score
}

// Score is the transparent breakdown of the risk score
type Score struct {
	Value   float64  `json:"value"`
	Signals []Signal `json:"signals"`
}

// Signal explains how one scoring term was computed
type Signal struct {
	Type        SignalType             `json:"type"`
	Points      float64                `json:"points"`
	Cap         float64                `json:"cap,omitempty"` // 0 means no cap on the term itself
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType names a scoring term
type SignalType string

const (
	SignalMissingClauses SignalType = "missing_clauses"
	SignalRiskFactors    SignalType = "risk_factors"
	SignalCompliance     SignalType = "compliance"
)

// Principles documents the guarantees of the analysis
type Principles struct {
	Deterministic  bool `json:"deterministic"`    // Same input, same result
	Transparent    bool `json:"transparent"`      // Every point of the score is explained
	NotLegalAdvice bool `json:"not_legal_advice"` // Drafting aid only
}

// DefaultPrinciples returns the standard principles
func DefaultPrinciples() Principles {
	return Principles{
		Deterministic:  true,
		Transparent:    true,
		NotLegalAdvice: true,
	}
}

// Disclaimer is appended to every rendered report
const Disclaimer = "Outputs generated by lexaudit are drafting aids only and do not constitute legal advice. " +
	"Please consult a qualified advocate for final review."

// LLMSummary contains the optional LLM-generated summary
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// RiskBand is a closed score range used for histograms and report labels
type RiskBand struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Label string  `json:"label"`
}

// Range renders the band as "low-high"
func (b RiskBand) Range() string {
	return fmt.Sprintf("%g-%g", b.Low, b.High)
}

var riskBands = []RiskBand{
	{0, 30, "low"},
	{31, 50, "moderate"},
	{51, 70, "elevated"},
	{71, 85, "high"},
	{86, 100, "severe"},
}

// RiskBands returns the score bands in ascending order
func RiskBands() []RiskBand {
	return append([]RiskBand(nil), riskBands...)
}

// BandFor returns the band containing score. Fractional scores between
// two bands fall into the upper one.
func BandFor(score float64) RiskBand {
	for _, b := range riskBands {
		if score <= b.High {
			return b
		}
	}
	return riskBands[len(riskBands)-1]
}
