package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/lexaudit/internal/logger"
	"github.com/ppiankov/lexaudit/internal/model"
)

// FileVerifier verifies one document on disk
type FileVerifier interface {
	VerifyFile(ctx context.Context, path, jurisdiction string) (*model.VerificationResult, error)
}

// DocumentJob verifies a single document
type DocumentJob struct {
	Index        int
	Path         string
	Jurisdiction string
	Verifier     FileVerifier
	Limiter      *Limiter
}

// Execute waits for the rate limiter, then verifies the document
func (j *DocumentJob) Execute(ctx context.Context) Result {
	ctx = logger.WithJob(logger.WithDocument(ctx, j.Path), j.Index)

	if err := j.Limiter.Wait(ctx); err != nil {
		return newDocumentResult(j.Path, nil, err)
	}

	result, err := j.Verifier.VerifyFile(ctx, j.Path, j.Jurisdiction)
	if err != nil {
		logger.Warn(ctx, "verification failed", "code", model.ClassifyError(err), "error", err)
	}
	return newDocumentResult(j.Path, result, err)
}

// DocumentResult is the outcome of one document in a batch
type DocumentResult struct {
	Path   string
	Result *model.VerificationResult
	Error  error
	Code   model.ErrorCode // empty on success
}

func newDocumentResult(path string, result *model.VerificationResult, err error) *DocumentResult {
	r := &DocumentResult{Path: path, Result: result, Error: err}
	if err != nil {
		r.Result = nil
		r.Code = model.ClassifyError(err)
	}
	return r
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many documents concurrently
type BatchProcessor struct {
	verifier    FileVerifier
	concurrency int
	limiter     *Limiter
	runID       string
}

// NewBatchProcessor creates a batch processor; requestsPerSecond <= 0 disables the rate cap
func NewBatchProcessor(verifier FileVerifier, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
		runID:       "run_" + uuid.NewString(),
	}
}

// RunID identifies this processor's batch in logs and digests
func (b *BatchProcessor) RunID() string {
	return b.runID
}

// ProcessFiles verifies every path and returns results in input order.
// Per-document failures are reported in the results, never as a batch error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string, jurisdiction string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	ctx = logger.WithRun(ctx, b.runID)
	logger.Info(ctx, "batch started", "documents", len(paths), "workers", b.concurrency)

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		pool.Submit(&DocumentJob{
			Index:        i,
			Path:         path,
			Jurisdiction: jurisdiction,
			Verifier:     b.verifier,
			Limiter:      b.limiter,
		})
	}

	results := pool.Wait()

	out := make([]*DocumentResult, len(results))
	for i, r := range results {
		if r == nil {
			// dropped after cancellation
			err := context.Cause(ctx)
			if err == nil {
				err = context.Canceled
			}
			out[i] = newDocumentResult(paths[i], nil, err)
			continue
		}
		out[i] = r.(*DocumentResult)
	}

	failed := len(out) - len(Succeeded(out))
	if failed == len(out) {
		logger.Error(ctx, "batch failed", "documents", len(out), "first_error", out[0].Error)
	} else {
		logger.Info(ctx, "batch finished", "succeeded", len(out)-failed, "failed", failed)
	}
	return out
}

// ProcessListFile reads document paths from a list file and verifies them
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath, jurisdiction string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}
	return b.ProcessFiles(ctx, paths, jurisdiction), nil
}

// ReadPathsFromFile reads document paths, one per line. Blank lines and
// #-comments are skipped, duplicates dropped, and relative paths resolved
// against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		line = filepath.Clean(line)

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// Succeeded returns the verification results of successful documents, in order
func Succeeded(results []*DocumentResult) []*model.VerificationResult {
	var out []*model.VerificationResult
	for _, r := range results {
		if r.Error == nil && r.Result != nil {
			out = append(out, r.Result)
		}
	}
	return out
}
