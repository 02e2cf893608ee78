package extract

import (
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// typeRule matches when any of anyOf is present and all of allOf are present
type typeRule struct {
	contractType model.ContractType
	anyOf        []string
	allOf        []string
}

// typeRules are evaluated in order; the first match wins
var typeRules = []typeRule{
	{contractType: model.ContractNDA, anyOf: []string{"non-disclosure", "nda"}},
	{contractType: model.ContractEmployment, anyOf: []string{"employment", "employee"}},
	{contractType: model.ContractLease, anyOf: []string{"lease", "rent"}},
	{contractType: model.ContractService, allOf: []string{"service", "agreement"}},
}

// ClassifyContractType detects the contract family from its text.
// Generic is the catch-all.
func ClassifyContractType(text string) model.ContractType {
	lower := strings.ToLower(text)

	for _, rule := range typeRules {
		if rule.matches(lower) {
			return rule.contractType
		}
	}

	return model.ContractGeneric
}

func (r typeRule) matches(lower string) bool {
	if len(r.anyOf) > 0 && !containsAny(lower, r.anyOf) {
		return false
	}
	for _, kw := range r.allOf {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
