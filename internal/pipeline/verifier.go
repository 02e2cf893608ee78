package pipeline

import (
	"context"
	"fmt"

	"github.com/ppiankov/lexaudit/internal/compliance"
	"github.com/ppiankov/lexaudit/internal/extract"
	"github.com/ppiankov/lexaudit/internal/findings"
	"github.com/ppiankov/lexaudit/internal/logger"
	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/ppiankov/lexaudit/internal/score"
)

// Verifier runs the deterministic verification stages over contract text.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	clauses             *extract.ClauseDetector
	risks               *extract.RiskAnalyzer
	compliance          *compliance.Engine
	scorer              *score.Scorer
	defaultJurisdiction string
	maxTextBytes        int64
	onStage             func(Stage)
	tableErr            error
}

// Option configures a Verifier
type Option func(*Verifier)

// WithClauseTables replaces the built-in mandatory clause sets and keyword table.
// Inconsistent tables make NewVerifier fail.
func WithClauseTables(sets map[model.ContractType][]string, keywords map[string][]string) Option {
	return func(v *Verifier) {
		d, err := extract.NewClauseDetectorWithTables(sets, keywords)
		if err != nil {
			v.tableErr = err
			return
		}
		v.clauses = d
	}
}

// WithComplianceEngine replaces the built-in jurisdiction rules
func WithComplianceEngine(e *compliance.Engine) Option {
	return func(v *Verifier) { v.compliance = e }
}

// WithStageHook observes every stage transition. The hook must not block.
func WithStageHook(fn func(Stage)) Option {
	return func(v *Verifier) { v.onStage = fn }
}

// NewVerifier builds a verifier and validates its clause tables
func NewVerifier(cfg model.VerificationConfig, opts ...Option) (*Verifier, error) {
	v := &Verifier{
		clauses:             extract.NewClauseDetector(),
		risks:               extract.NewRiskAnalyzer(),
		compliance:          compliance.NewEngine(),
		scorer:              score.NewScorer(),
		defaultJurisdiction: cfg.DefaultJurisdiction,
		maxTextBytes:        cfg.MaxTextBytes,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.defaultJurisdiction == "" {
		v.defaultJurisdiction = "IN"
	}

	if v.tableErr != nil {
		return nil, fmt.Errorf("clause tables: %w", v.tableErr)
	}
	if err := v.clauses.Validate(); err != nil {
		return nil, fmt.Errorf("clause tables: %w", err)
	}
	return v, nil
}

// Verify analyzes contract text for one jurisdiction.
// An empty jurisdiction uses the configured default. Only invalid input fails.
func (v *Verifier) Verify(ctx context.Context, text, jurisdiction string) (*model.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := extract.ValidateText(text, v.maxTextBytes); err != nil {
		return nil, err
	}

	if jurisdiction == "" {
		jurisdiction = v.defaultJurisdiction
	}
	jurisdiction = compliance.NormalizeJurisdiction(jurisdiction)
	ctx = logger.WithJurisdiction(ctx, jurisdiction)
	v.advance(ctx, StageReceived)

	contractType := extract.ClassifyContractType(text)
	metadata := extract.ExtractMetadata(text)
	v.advance(ctx, StageClassified)

	missing := v.clauses.Missing(text, contractType)
	v.advance(ctx, StageClausesChecked)

	risks := v.risks.Analyze(text)
	v.advance(ctx, StageRisksAnalyzed)

	checks := v.compliance.Check(text, jurisdiction)
	v.advance(ctx, StageComplianceChecked)

	breakdown := v.scorer.Calculate(missing, risks, checks)
	v.advance(ctx, StageScored)

	found := findings.Compose(missing, risks, checks)
	suggestions := findings.Suggest(found)
	v.advance(ctx, StageComposed)

	result := &model.VerificationResult{
		ContractType:   contractType,
		Jurisdiction:   jurisdiction,
		Metadata:       metadata,
		RiskScore:      breakdown.Value,
		Findings:       found,
		Suggestions:    suggestions,
		MissingClauses: missing,
		RiskFactors:    risks,
		Compliance:     checks,
		Score:          breakdown,
		Principles:     model.DefaultPrinciples(),
	}
	v.advance(ctx, StageDone)

	logger.Info(ctx, "contract verified",
		"contract_type", contractType,
		"risk_score", result.RiskScore,
		"findings", len(found),
		"compliance", checks.OverallStatus)

	return result, nil
}

// DefaultJurisdiction returns the jurisdiction used when none is given
func (v *Verifier) DefaultJurisdiction() string {
	return v.defaultJurisdiction
}

// MaxTextBytes returns the input size limit (0 = unlimited)
func (v *Verifier) MaxTextBytes() int64 {
	return v.maxTextBytes
}

func (v *Verifier) advance(ctx context.Context, s Stage) {
	logger.Debug(ctx, "verification stage", "stage", s.String())
	if v.onStage != nil {
		v.onStage(s)
	}
}
