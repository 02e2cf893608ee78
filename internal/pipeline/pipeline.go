package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/lexaudit/internal/cache"
	"github.com/ppiankov/lexaudit/internal/extract"
	"github.com/ppiankov/lexaudit/internal/llm"
	"github.com/ppiankov/lexaudit/internal/logger"
	"github.com/ppiankov/lexaudit/internal/model"
)

// Pipeline wires the verifier to its optional collaborators:
// result memoization, the LLM summary and report rendering
type Pipeline struct {
	verifier   *Verifier
	cached     *CachedVerifier
	summarizer *llm.Summarizer // nil when disabled
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, out io.Writer, opts ...Option) (*Pipeline, error) {
	verifier, err := NewVerifier(cfg.Verification, opts...)
	if err != nil {
		return nil, err
	}

	var store cache.Cache
	if c := cache.NewLayeredCacheFromConfig(cfg.Cache); c != nil {
		store = c
	}

	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		verifier:   verifier,
		cached:     NewCachedVerifier(verifier, store),
		summarizer: summarizer,
		renderer:   NewRenderer(cfg.Output.IncludeFooter, out),
		config:     cfg,
	}, nil
}

// Verify runs verification and, when enabled, attaches the LLM summary.
// The summary is generated after scoring and never changes the result's score.
func (p *Pipeline) Verify(ctx context.Context, text, jurisdiction string) (*model.VerificationResult, error) {
	result, err := p.cached.Verify(ctx, text, jurisdiction)
	if err != nil {
		return nil, err
	}

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *result)
		if err != nil {
			logger.Warn(ctx, "LLM summary failed", "error", err)
		} else {
			withSummary := *result
			withSummary.LLM = summary
			result = &withSummary
		}
	}

	return result, nil
}

// VerifyFile loads a document from disk and verifies it
func (p *Pipeline) VerifyFile(ctx context.Context, path, jurisdiction string) (*model.VerificationResult, error) {
	text, err := extract.LoadText(path, p.verifier.MaxTextBytes())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p.Verify(logger.WithDocument(ctx, path), text, jurisdiction)
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// RenderReport writes the requested outputs and prints the console summary
func (p *Pipeline) RenderReport(name string, result *model.VerificationResult, jsonPath, mdPath string) error {
	verbose := p.config.Output.Verbose

	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(p.renderer.out, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(p.renderer.out, "✓ Wrote Markdown: %s\n", mdPath)
		}

		if result.LLM != nil && result.LLM.Enabled {
			llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
			if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.LLM), llmPath); err != nil {
				logger.Warn(context.Background(), "failed to write LLM summary", "path", llmPath, "error", err)
			} else if verbose {
				fmt.Fprintf(p.renderer.out, "✓ Wrote LLM Summary: %s\n", llmPath)
			}
		}
	}

	p.renderer.RenderSummary(name, result)
	return nil
}
