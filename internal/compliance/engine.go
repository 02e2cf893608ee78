package compliance

import (
	"sort"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// Document is the case-folded view of a contract handed to every checker
type Document struct {
	Lower   string    // Lower-cased contract text
	Amounts []float64 // Currency amounts found by the engine's amount parser
}

// Checker evaluates one statutory category and yields zero or more checks
type Checker struct {
	Category string
	Check    func(doc Document) []model.ComplianceCheck
}

// AmountParser extracts currency amounts from lower-cased text
type AmountParser func(lower string) []float64

// Engine dispatches a jurisdiction to its ordered list of category checkers
type Engine struct {
	rules   map[string][]Checker
	amounts AmountParser
}

// Option configures an Engine
type Option func(*Engine)

// WithAmountParser replaces the currency-amount parser used by payment heuristics
func WithAmountParser(p AmountParser) Option {
	return func(e *Engine) {
		if p != nil {
			e.amounts = p
		}
	}
}

// WithRules replaces the jurisdiction rule table
func WithRules(rules map[string][]Checker) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// NewEngine creates an engine over the built-in rule table
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:   rulebook,
		amounts: RupeeAmounts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check evaluates text against the rules of a jurisdiction.
// Unsupported jurisdictions yield an empty, passing result.
func (e *Engine) Check(text, jurisdiction string) model.ComplianceResult {
	code := NormalizeJurisdiction(jurisdiction)
	checkers, ok := e.rules[code]
	if !ok {
		return model.NewComplianceResult(code, nil)
	}

	lower := strings.ToLower(text)
	doc := Document{Lower: lower, Amounts: e.amounts(lower)}

	checks := []model.ComplianceCheck{}
	for _, c := range checkers {
		checks = append(checks, c.Check(doc)...)
	}

	return model.NewComplianceResult(code, checks)
}

// Supports reports whether the jurisdiction has any rules
func (e *Engine) Supports(jurisdiction string) bool {
	_, ok := e.rules[NormalizeJurisdiction(jurisdiction)]
	return ok
}

// Categories returns the ordered checker categories of a jurisdiction
func (e *Engine) Categories(jurisdiction string) []string {
	var out []string
	for _, c := range e.rules[NormalizeJurisdiction(jurisdiction)] {
		out = append(out, c.Category)
	}
	return out
}

// Jurisdictions returns the supported jurisdiction codes, sorted
func (e *Engine) Jurisdictions() []string {
	codes := make([]string, 0, len(e.rules))
	for code := range e.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// NormalizeJurisdiction upper-cases and trims a jurisdiction code
func NormalizeJurisdiction(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
