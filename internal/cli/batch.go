package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/lexaudit/internal/dashboard"
	"github.com/ppiankov/lexaudit/internal/pipeline"
	"github.com/ppiankov/lexaudit/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Verify many contracts listed in a file in parallel",
	Long: `Batch verifies multiple contracts concurrently:
- Read document paths from the list file (one per line, # for comments)
- Relative paths are resolved against the list file's directory
- Verify documents in parallel with a configurable worker count
- Write a JSON and Markdown report per document
- Print a digest: risk distribution, frequent findings, compliance counts

Example:
  lexaudit batch contracts.txt
  lexaudit batch contracts.txt --concurrency 8 --output-dir ./reports
  lexaudit batch contracts.txt --jurisdiction IN --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config, NumCPU)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lexaudit-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	addVerificationFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  lexaudit Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  List file:     %s\n", listFile)
	fmt.Fprintf(os.Stderr, "  Jurisdiction:  %s\n", cfg.Verification.DefaultJurisdiction)
	fmt.Fprintf(os.Stderr, "  Workers:       %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:       %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:           %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessListFile(ctx, listFile, cfg.Verification.DefaultJurisdiction)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	failures := 0
	renderer := p.Renderer()
	names := newReportNames()
	for _, r := range results {
		if r.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s [%s]: %v\n", r.Path, r.Code, r.Error)
			continue
		}

		slug := names.next(r.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(r.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", r.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(r.Result, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", r.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%s, risk: %.0f/100)\n", r.Path, r.Result.ContractType, r.Result.RiskScore)
	}

	digest := dashboard.Build(worker.Succeeded(results))
	digest.RunID = processor.RunID()
	if err := writeDigest(digest, filepath.Join(outputDir, "digest.json")); err != nil {
		fmt.Fprintf(os.Stderr, "✗ failed to write digest: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Run:       %s\n", digest.RunID)
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")
	digest.Fprint(os.Stderr)
	fmt.Fprintf(os.Stderr, "\n")

	if failures > 0 && failures == len(results) {
		return fmt.Errorf("all %d documents failed", failures)
	}
	return nil
}

func writeDigest(d dashboard.Digest, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// reportNames derives unique report file names from document paths
type reportNames struct {
	used map[string]bool
}

func newReportNames() *reportNames {
	return &reportNames{used: make(map[string]bool)}
}

// next returns the document's slug, or the first free slug-N when taken
func (n *reportNames) next(path string) string {
	slug := sanitizeFilename(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	name := slug
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s-%d", slug, i)
	}
	n.used[name] = true
	return name
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if s == "" || s == "." || s == ".." {
		s = "document"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
