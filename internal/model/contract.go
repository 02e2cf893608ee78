package model

// ContractType is the closed set of contract families the verifier knows about
type ContractType string

const (
	ContractGeneric    ContractType = "generic"
	ContractEmployment ContractType = "employment"
	ContractNDA        ContractType = "nda"
	ContractService    ContractType = "service"
	ContractLease      ContractType = "lease"
)

// ContractTypes lists every contract type in a stable order
func ContractTypes() []ContractType {
	return []ContractType{ContractGeneric, ContractEmployment, ContractNDA, ContractService, ContractLease}
}

// Severity ranks a finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Actionable reports whether findings of this severity become suggestions
func (s Severity) Actionable() bool {
	return s == SeverityCritical || s == SeverityHigh
}

// RiskFactors holds the hedge/vagueness signals and unclear-term flags of one document
type RiskFactors struct {
	HedgeWordsFound    []string `json:"hedge_words_found"`
	VaguePhrasesFound  []string `json:"vague_phrases_found"`
	UnclearPayment     bool     `json:"unclear_payment"`
	NoLiabilityCap     bool     `json:"no_liability_cap"`
	NoIndemnity        bool     `json:"no_indemnity"`
	UnclearTermination bool     `json:"unclear_termination"`
}

// Finding is one reportable problem with the contract
type Finding struct {
	Clause     string   `json:"clause"`     // Display label, e.g. "Governing Law"
	Issue      string   `json:"issue"`      // What is wrong
	Severity   Severity `json:"severity"`   // critical, high, medium, low
	Suggestion string   `json:"suggestion"` // Remediation text
}

// Metadata is the best-effort side output of the verifier
type Metadata struct {
	Dates   []string `json:"dates"`
	Amounts []string `json:"amounts"`
	Parties []string `json:"parties"`
}
