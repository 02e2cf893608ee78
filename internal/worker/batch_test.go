package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/lexaudit/internal/logger"
	"github.com/ppiankov/lexaudit/internal/model"
)

// mockVerifier implements FileVerifier
type mockVerifier struct {
	mu    sync.Mutex
	calls []string
	delay func(path string) time.Duration
	fail  map[string]error
}

func (m *mockVerifier) VerifyFile(ctx context.Context, path, jurisdiction string) (*model.VerificationResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, path)
	m.mu.Unlock()

	if m.delay != nil {
		time.Sleep(m.delay(path))
	}
	if err, ok := m.fail[path]; ok {
		return nil, err
	}
	return &model.VerificationResult{
		ContractType: model.ContractGeneric,
		Jurisdiction: jurisdiction,
		RiskScore:    float64(len(path)),
	}, nil
}

func TestProcessFiles_PreservesInputOrder(t *testing.T) {
	verifier := &mockVerifier{
		delay: func(path string) time.Duration {
			if strings.HasSuffix(path, "0.txt") {
				return 30 * time.Millisecond
			}
			return 0
		},
	}
	processor := NewBatchProcessor(verifier, 4, 0, 0)

	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, fmt.Sprintf("docs/%02d.txt", i))
	}

	results := processor.ProcessFiles(context.Background(), paths, "IN")

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], r.Path)
		}
		if r.Error != nil || r.Result == nil {
			t.Errorf("result %d: unexpected failure %v", i, r.Error)
		}
		if r.Result != nil && r.Result.Jurisdiction != "IN" {
			t.Errorf("result %d: jurisdiction not forwarded, got %q", i, r.Result.Jurisdiction)
		}
	}
	if len(verifier.calls) != len(paths) {
		t.Errorf("expected %d verifier calls, got %d", len(paths), len(verifier.calls))
	}
}

func TestProcessFiles_FailuresAreIsolated(t *testing.T) {
	verifier := &mockVerifier{
		fail: map[string]error{
			"scan.pdf":   fmt.Errorf("load scan.pdf: %w", model.ErrUnsupportedFormat),
			"broken.txt": fmt.Errorf("load broken.txt: %w", model.ErrInvalidInput),
		},
	}
	processor := NewBatchProcessor(verifier, 2, 0, 0)

	results := processor.ProcessFiles(context.Background(), []string{"a.txt", "scan.pdf", "broken.txt", "b.txt"}, "IN")

	tests := []struct {
		path string
		code model.ErrorCode
	}{
		{"a.txt", ""},
		{"scan.pdf", model.CodeFormat},
		{"broken.txt", model.CodeInvalidInput},
		{"b.txt", ""},
	}
	for i, tt := range tests {
		r := results[i]
		if r.Path != tt.path {
			t.Fatalf("result %d: expected %s, got %s", i, tt.path, r.Path)
		}
		if r.Code != tt.code {
			t.Errorf("%s: expected code %q, got %q", tt.path, tt.code, r.Code)
		}
		if (tt.code != "") != (r.Error != nil) {
			t.Errorf("%s: error presence mismatch: %v", tt.path, r.Error)
		}
		if r.Error != nil && r.Result != nil {
			t.Errorf("%s: failed document should carry no result", tt.path)
		}
	}

	if got := len(Succeeded(results)); got != 2 {
		t.Errorf("expected 2 succeeded results, got %d", got)
	}
}

func TestProcessFiles_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)

	results := processor.ProcessFiles(context.Background(), nil, "IN")

	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil results, got %v", results)
	}
}

func TestProcessFiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&mockVerifier{}, 1, 1, 1)
	paths := []string{"a.txt", "b.txt", "c.txt"}

	results := processor.ProcessFiles(ctx, paths, "IN")

	if len(results) != len(paths) {
		t.Fatalf("expected one result per path, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if r.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], r.Path)
		}
		if r.Error != nil && r.Code != model.CodeCancel {
			t.Errorf("result %d: expected cancel code, got %q (%v)", i, r.Code, r.Error)
		}
	}
}

func TestDocumentJob_LimiterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	verifier := &mockVerifier{}
	job := &DocumentJob{Path: "a.txt", Verifier: verifier, Limiter: NewLimiter(1, 1)}

	result := job.Execute(ctx).(*DocumentResult)

	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("expected canceled error, got %v", result.Error)
	}
	if result.Code != model.CodeCancel {
		t.Errorf("expected cancel code, got %q", result.Code)
	}
	if len(verifier.calls) != 0 {
		t.Error("verifier should not run when the limiter wait fails")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "docs.txt")

	content := `# contracts to review
deed.txt

  nda.md  
sub/lease.txt
# duplicate below
./deed.txt
/abs/contract.txt
`
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create list file: %v", err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "deed.txt"),
		filepath.Join(dir, "nda.md"),
		filepath.Join(dir, "sub", "lease.txt"),
		"/abs/contract.txt",
	}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("path %d: expected %s, got %s", i, expected[i], p)
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for nonexistent list file")
	}
}

func TestProcessListFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "docs.txt")
	if err := os.WriteFile(listPath, []byte("one.txt\ntwo.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockVerifier{}, 2, 0, 0)

	results, err := processor.ProcessListFile(context.Background(), listPath, "IN")
	if err != nil {
		t.Fatalf("ProcessListFile failed: %v", err)
	}
	if len(results) != 2 || results[0].Path != filepath.Join(dir, "one.txt") {
		t.Errorf("unexpected results: %+v", results)
	}

	if _, err := processor.ProcessListFile(context.Background(), filepath.Join(dir, "missing.txt"), "IN"); err == nil {
		t.Error("expected error for missing list file")
	}
}

func TestSucceeded_KeepsOrder(t *testing.T) {
	a := &model.VerificationResult{RiskScore: 1}
	b := &model.VerificationResult{RiskScore: 2}
	results := []*DocumentResult{
		{Path: "a", Result: a},
		{Path: "x", Error: errors.New("boom")},
		{Path: "b", Result: b},
	}

	got := Succeeded(results)

	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("unexpected succeeded results: %v", got)
	}
}

func TestBatchProcessor_RunID(t *testing.T) {
	a := NewBatchProcessor(&mockVerifier{}, 1, 0, 0)
	b := NewBatchProcessor(&mockVerifier{}, 1, 0, 0)

	if !strings.HasPrefix(a.RunID(), "run_") {
		t.Errorf("expected run_ prefix, got %s", a.RunID())
	}
	if a.RunID() == b.RunID() {
		t.Error("expected distinct run IDs per processor")
	}
}

func TestProcessFiles_LogsErrorWhenEveryDocumentFails(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger.InitWithWriter(&logger.Config{Level: "info", Format: "json"}, &buf)

	verifier := &mockVerifier{fail: map[string]error{
		"a.txt": model.ErrInvalidInput,
		"b.txt": model.ErrInvalidInput,
	}}
	NewBatchProcessor(verifier, 2, 0, 0).ProcessFiles(context.Background(), []string{"a.txt", "b.txt"}, "IN")

	if !strings.Contains(buf.String(), `"level":"ERROR","msg":"batch failed"`) {
		t.Errorf("Expected an error-level batch failure log, got %s", buf.String())
	}

	buf.Reset()
	NewBatchProcessor(verifier, 2, 0, 0).ProcessFiles(context.Background(), []string{"a.txt", "c.txt"}, "IN")

	if strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("Expected no error-level log for a partial failure, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"msg":"batch finished"`) {
		t.Errorf("Expected a batch finished log, got %s", buf.String())
	}
}
