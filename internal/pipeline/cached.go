package pipeline

import (
	"context"

	"github.com/ppiankov/lexaudit/internal/cache"
	"github.com/ppiankov/lexaudit/internal/compliance"
	"github.com/ppiankov/lexaudit/internal/logger"
	"github.com/ppiankov/lexaudit/internal/model"
)

// CachedVerifier memoizes results by jurisdiction and exact text.
// Verification is deterministic, so a hit is identical to a fresh run.
type CachedVerifier struct {
	verifier *Verifier
	store    cache.Cache
}

// NewCachedVerifier wraps v with store; a nil store disables memoization
func NewCachedVerifier(v *Verifier, store cache.Cache) *CachedVerifier {
	return &CachedVerifier{verifier: v, store: store}
}

// Verify returns a memoized result when present, otherwise verifies and stores
func (c *CachedVerifier) Verify(ctx context.Context, text, jurisdiction string) (*model.VerificationResult, error) {
	if c.store == nil {
		return c.verifier.Verify(ctx, text, jurisdiction)
	}

	if jurisdiction == "" {
		jurisdiction = c.verifier.DefaultJurisdiction()
	}
	jurisdiction = compliance.NormalizeJurisdiction(jurisdiction)

	if result, ok := cache.GetResult(c.store, jurisdiction, text); ok {
		logger.Debug(ctx, "cache hit", "jurisdiction", jurisdiction)
		return result, nil
	}

	result, err := c.verifier.Verify(ctx, text, jurisdiction)
	if err != nil {
		return nil, err
	}

	if err := cache.SetResult(c.store, jurisdiction, text, result); err != nil {
		logger.Warn(ctx, "cache write failed", "error", err)
	}
	return result, nil
}
