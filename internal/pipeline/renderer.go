package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

// maxReportFindings is how many findings the Markdown summary lists
const maxReportFindings = 10

// Renderer writes verification results as JSON, Markdown and console summaries
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a renderer printing summaries to out
func NewRenderer(includeFooter bool, out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{includeFooter: includeFooter, out: out}
}

// RenderJSON writes the full result as indented JSON
func (r *Renderer) RenderJSON(result *model.VerificationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the human-readable summary
func (r *Renderer) RenderMarkdown(result *model.VerificationResult, path string) error {
	return writeFile(path, []byte(r.Markdown(result)))
}

// RenderLLMMarkdown writes a pre-rendered LLM summary
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	return writeFile(path, []byte(markdown))
}

// Markdown renders the summary document
func (r *Renderer) Markdown(result *model.VerificationResult) string {
	var b strings.Builder
	band := model.BandFor(result.RiskScore)

	b.WriteString("# Contract Verification Summary\n\n")
	fmt.Fprintf(&b, "**Contract Type:** %s  \n", result.ContractType)
	fmt.Fprintf(&b, "**Jurisdiction:** %s  \n", result.Jurisdiction)
	fmt.Fprintf(&b, "**Risk Score:** %.1f/100 (%s)\n\n", result.RiskScore, band.Label)

	b.WriteString("## Key Details\n\n")
	fmt.Fprintf(&b, "- **Parties:** %s\n", joinOrDash(result.Metadata.Parties))
	fmt.Fprintf(&b, "- **Dates:** %s\n", joinOrDash(result.Metadata.Dates))
	fmt.Fprintf(&b, "- **Amounts:** %s\n\n", joinOrDash(result.Metadata.Amounts))

	b.WriteString("## Findings\n\n")
	if len(result.Findings) == 0 {
		b.WriteString("No findings.\n\n")
	} else {
		b.WriteString("| Severity | Clause | Issue |\n|----------|--------|-------|\n")
		for i, f := range result.Findings {
			if i >= maxReportFindings {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Severity, f.Clause, escapeCell(f.Issue))
		}
		if n := len(result.Findings) - maxReportFindings; n > 0 {
			fmt.Fprintf(&b, "\n_%d more finding(s) in the JSON report._\n", n)
		}
		b.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Compliance\n\n")
	if len(result.Compliance.Checks) == 0 {
		fmt.Fprintf(&b, "No statutory checks for jurisdiction %s.\n\n", result.Jurisdiction)
	} else {
		b.WriteString("| Category | Status | Message | Citation |\n|----------|--------|---------|----------|\n")
		for _, c := range result.Compliance.Checks {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Category, c.Status, escapeCell(c.Message), c.Citation)
		}
		fmt.Fprintf(&b, "\nOverall: **%s**\n\n", result.Compliance.OverallStatus)
	}

	b.WriteString("## Score Breakdown\n\n")
	for _, s := range result.Score.Signals {
		fmt.Fprintf(&b, "- **%s**: %.1f points. %s", s.Type, s.Points, s.Description)
		if formula, ok := s.Data["formula"].(string); ok {
			fmt.Fprintf(&b, " (`%s`)", formula)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n\n_%s_\n", model.Disclaimer)
	}
	return b.String()
}

// RenderSummary prints a short console summary
func (r *Renderer) RenderSummary(name string, result *model.VerificationResult) {
	band := model.BandFor(result.RiskScore)

	fmt.Fprintf(r.out, "\n%s\n", name)
	fmt.Fprintf(r.out, "  Type: %s  Jurisdiction: %s\n", result.ContractType, result.Jurisdiction)
	fmt.Fprintf(r.out, "  Risk score: %.1f/100 (%s)\n", result.RiskScore, band.Label)
	fmt.Fprintf(r.out, "  Findings: %d  Missing clauses: %d  Compliance: %s\n",
		len(result.Findings), len(result.MissingClauses), result.Compliance.OverallStatus)
	for i, s := range result.Suggestions {
		if i >= 3 {
			fmt.Fprintf(r.out, "  ... %d more suggestion(s)\n", len(result.Suggestions)-3)
			break
		}
		fmt.Fprintf(r.out, "  - %s\n", s)
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
