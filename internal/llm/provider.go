package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of a verification result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Result is the verification result to summarize
	Result model.VerificationResult

	// Statutes is the STRICT allowlist of statutes the LLM may name.
	// Anything outside it is treated as invented law.
	Statutes []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary string

	// CitedStatutes are the statutes the LLM actually named (for verification)
	CitedStatutes []string

	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictCitations rejects summaries naming statutes outside the allowlist
	StrictCitations bool

	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:        "", // Disabled by default
		Timeout:         30,
		StrictCitations: true,
		MaxTokens:       800,
	}
}

const systemPrompt = "You are a careful assistant that explains contract review results in plain language. " +
	"You never give legal advice and never name laws you were not given."

// BuildPrompt constructs the default summarization prompt for a result
func BuildPrompt(result model.VerificationResult, statutes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a lexaudit contract review. lexaudit flags drafting risks with keyword heuristics - it NEVER decides whether a contract is valid or enforceable.

RULES:
1. You may ONLY name these statutes:
%s

2. Do not name any other law, regulation or case.
3. Describe risks as things to review, not as legal conclusions.
4. End with a reminder to consult a qualified advocate.

Review Summary:
- Contract type: %s
- Jurisdiction: %s
- Risk score: %.1f/100
- Missing mandatory clauses: %s
- Findings: %d (%d critical/high)
- Compliance status: %s

Top Findings:
`, joinStatutes(statutes), result.ContractType, result.Jurisdiction, result.RiskScore,
		joinOrNone(result.MissingClauses), len(result.Findings), countActionable(result.Findings), result.Compliance.OverallStatus)

	for i, f := range result.Findings {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", f.Severity, f.Clause, f.Issue)
	}

	b.WriteString("\nProvide a 3-4 sentence summary a non-lawyer can act on.")
	return b.String()
}

// StatutesFor returns the statute allowlist of a result: every citation of its compliance checks
func StatutesFor(result model.VerificationResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range result.Compliance.Checks {
		for _, act := range extractStatutes(c.Citation) {
			if !seen[act] {
				seen[act] = true
				out = append(out, act)
			}
		}
	}
	return out
}

func joinStatutes(statutes []string) string {
	if len(statutes) == 0 {
		return "(No statutes - do not name any law)"
	}
	var b strings.Builder
	for _, s := range statutes {
		fmt.Fprintf(&b, "\n- %s", s)
	}
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func countActionable(findings []model.Finding) int {
	count := 0
	for _, f := range findings {
		if f.Severity.Actionable() {
			count++
		}
	}
	return count
}
