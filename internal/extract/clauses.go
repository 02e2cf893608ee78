package extract

import (
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// ClauseDetector reports mandatory clauses that a contract does not mention
type ClauseDetector struct {
	sets     map[model.ContractType][]string
	keywords map[string][]string
}

// NewClauseDetector creates a detector over the built-in tables
func NewClauseDetector() *ClauseDetector {
	return &ClauseDetector{
		sets:     mandatoryClauses,
		keywords: clauseKeywords,
	}
}

// NewClauseDetectorWithTables creates a detector over custom tables after validating them
func NewClauseDetectorWithTables(sets map[model.ContractType][]string, keywords map[string][]string) (*ClauseDetector, error) {
	if err := ValidateTables(sets, keywords); err != nil {
		return nil, err
	}
	return &ClauseDetector{sets: sets, keywords: keywords}, nil
}

// Validate checks the detector's tables
func (d *ClauseDetector) Validate() error {
	return ValidateTables(d.sets, d.keywords)
}

// MandatoryClauses returns the clause set for a contract type,
// falling back to the generic set for unknown types
func (d *ClauseDetector) MandatoryClauses(ct model.ContractType) []string {
	if ids, ok := d.sets[ct]; ok {
		return ids
	}
	return d.sets[model.ContractGeneric]
}

// Missing returns the mandatory clauses absent from text, in clause-set order.
// A clause without keywords is always reported missing.
func (d *ClauseDetector) Missing(text string, ct model.ContractType) []string {
	lower := strings.ToLower(text)
	missing := []string{}

	for _, id := range d.MandatoryClauses(ct) {
		if !containsAny(lower, d.keywords[id]) {
			missing = append(missing, id)
		}
	}

	return missing
}

// ClauseLabel turns a clause id into a display label ("governing_law" -> "Governing Law")
func ClauseLabel(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
