package extract

import (
	"fmt"
	"sort"

	"github.com/ppiankov/lexaudit/internal/model"
)

// mandatoryClauses lists the clauses each contract type is expected to contain,
// in the order findings are reported
var mandatoryClauses = map[model.ContractType][]string{
	model.ContractGeneric:    {"parties", "consideration", "governing_law", "signatures"},
	model.ContractEmployment: {"parties", "position", "salary", "notice_period", "confidentiality", "ip_ownership", "termination"},
	model.ContractNDA:        {"parties", "confidential_info_definition", "obligations", "duration", "exceptions", "governing_law"},
	model.ContractService:    {"parties", "scope", "payment", "deliverables", "termination", "intellectual_property"},
	model.ContractLease:      {"parties", "premises", "rent", "duration", "deposit", "maintenance", "termination"},
}

// clauseKeywords maps a clause id to the phrases that evidence it.
// Matching is a case-insensitive substring test.
var clauseKeywords = map[string][]string{
	"parties":                      {"party", "between", "hereinafter"},
	"consideration":                {"consideration", "payment", "compensation"},
	"governing_law":                {"governing law", "jurisdiction", "laws of"},
	"signatures":                   {"signature", "signed", "witness"},
	"confidentiality":              {"confidential", "non-disclosure", "nda"},
	"ip_ownership":                 {"intellectual property", "ip", "copyright", "patent"},
	"termination":                  {"termination", "terminate", "end of agreement"},
	"notice_period":                {"notice", "notice period"},
	"scope":                        {"scope", "work", "services", "deliverables"},
	"position":                     {"position", "designation", "job title"},
	"salary":                       {"salary", "remuneration", "compensation", "wages"},
	"confidential_info_definition": {"confidential information", "proprietary information"},
	"obligations":                  {"obligation", "shall not disclose", "receiving party"},
	"duration":                     {"duration", "term of", "period of"},
	"exceptions":                   {"exception", "shall not apply", "publicly available"},
	"payment":                      {"payment", "fee", "invoice"},
	"deliverables":                 {"deliverable", "milestone"},
	"intellectual_property":        {"intellectual property", "copyright", "patent", "trademark"},
	"premises":                     {"premises", "property located"},
	"rent":                         {"rent", "monthly rental"},
	"deposit":                      {"deposit", "security amount"},
	"maintenance":                  {"maintenance", "repair", "upkeep"},
}

// criticalClauses are the clauses whose absence makes a contract unenforceable on its face
var criticalClauses = map[string]bool{
	"parties":       true,
	"consideration": true,
	"signatures":    true,
}

// IsCriticalClause reports whether a missing clause is a critical finding
func IsCriticalClause(id string) bool {
	return criticalClauses[id]
}

// ValidateTables checks that every contract type has a non-empty clause set
// and that every clause id used in a set has keywords
func ValidateTables(sets map[model.ContractType][]string, keywords map[string][]string) error {
	if _, ok := sets[model.ContractGeneric]; !ok {
		return fmt.Errorf("%w: no clause set for %q", model.ErrConfiguration, model.ContractGeneric)
	}

	for _, ct := range model.ContractTypes() {
		ids, ok := sets[ct]
		if !ok || len(ids) == 0 {
			return fmt.Errorf("%w: empty clause set for %q", model.ErrConfiguration, ct)
		}
		for _, id := range ids {
			if len(keywords[id]) == 0 {
				return fmt.Errorf("%w: clause %q of %q has no keywords", model.ErrConfiguration, id, ct)
			}
		}
	}

	return nil
}

// DefaultClauseSets returns a copy of the built-in mandatory clause sets
func DefaultClauseSets() map[model.ContractType][]string {
	out := make(map[model.ContractType][]string, len(mandatoryClauses))
	for ct, ids := range mandatoryClauses {
		out[ct] = append([]string(nil), ids...)
	}
	return out
}

// DefaultClauseKeywords returns a copy of the built-in keyword table
func DefaultClauseKeywords() map[string][]string {
	out := make(map[string][]string, len(clauseKeywords))
	for id, kws := range clauseKeywords {
		out[id] = append([]string(nil), kws...)
	}
	return out
}

// ClauseIDs returns every clause id of the keyword table, sorted
func ClauseIDs(keywords map[string][]string) []string {
	ids := make([]string, 0, len(keywords))
	for id := range keywords {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
