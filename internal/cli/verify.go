package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/lexaudit/internal/model"
	"github.com/ppiankov/lexaudit/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	jurisdiction string
	timeout      time.Duration
	maxBytes     int64
	noCache      bool
	noFooter     bool
	llmProvider  string
	llmModel     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Verify a single contract and generate a risk report",
	Long: `Verify analyzes one contract (.txt, .md or .html) to:
- Classify the contract type
- Detect missing mandatory clauses
- Flag risky and vague wording
- Run jurisdiction compliance checks
- Compute a transparent 0-100 risk score with findings and suggestions

Example:
  lexaudit verify deed.txt
  lexaudit verify nda.md --json nda.json --md nda-summary.md
  lexaudit verify lease.txt --jurisdiction IN --llm openai --llm-model gpt-4o-mini
  lexaudit verify lease.txt --llm anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	addVerificationFlags(verifyCmd)
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout, including the optional LLM summary")
}

// addVerificationFlags registers the flags shared by verify and batch
func addVerificationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&jurisdiction, "jurisdiction", "j", "", "jurisdiction code for compliance checks (default from config, IN)")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max document size in bytes (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable the disclaimer footer in Markdown reports")
	cmd.Flags().StringVar(&llmProvider, "llm", "", "enable the LLM summary with this provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (default depends on provider)")
}

// defaultModelFor names the model used when neither the flag nor the config sets one
func defaultModelFor(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "gpt-4o-mini"
	case "anthropic", "claude":
		return "claude-3-5-haiku-latest"
	case "ollama":
		return "llama3.1"
	}
	return ""
}

// applyLLMFlags resolves provider, model and credentials. An explicit model
// flag wins, then the config file, then the provider's default.
func applyLLMFlags(cfg *model.Config, provider, modelName string, modelChanged bool) error {
	if provider != "" {
		cfg.LLM.Provider = provider
	}
	switch {
	case modelChanged && modelName != "":
		cfg.LLM.Model = modelName
	case cfg.LLM.Model == "":
		cfg.LLM.Model = defaultModelFor(cfg.LLM.Provider)
	}

	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY environment variable not set", model.ErrConfiguration)
		}
	case "anthropic", "claude":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY environment variable not set", model.ErrConfiguration)
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// buildConfig applies command-line flags over the loaded configuration
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := loadConfig()

	if jurisdiction != "" {
		cfg.Verification.DefaultJurisdiction = jurisdiction
	}
	if maxBytes > 0 {
		cfg.Verification.MaxTextBytes = maxBytes
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	if err := applyLLMFlags(cfg, llmProvider, llmModel, cmd.Flags().Changed("llm-model")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", path)
		fmt.Fprintf(os.Stderr, "Jurisdiction: %s\n", cfg.Verification.DefaultJurisdiction)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	result, err := p.VerifyFile(ctx, path, cfg.Verification.DefaultJurisdiction)
	if err != nil {
		return fmt.Errorf("verify failed [%s]: %w", model.ClassifyError(err), err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified as %s\n", result.ContractType)
		fmt.Fprintf(os.Stderr, "✓ %d missing clause(s), %d finding(s)\n", len(result.MissingClauses), len(result.Findings))
		fmt.Fprintf(os.Stderr, "✓ Compliance: %s\n", result.Compliance.OverallStatus)
		if result.LLM != nil && result.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", result.LLM.Provider, result.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(path, result, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
