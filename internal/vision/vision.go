// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vision sends page images to a vision-capable model and returns
// the raw response text describing the visual formatting. The response is
// deliberately returned untouched so the extraction and normalization
// stages stay pure. Implements: prd001-analysis (R1-R5);
// docs/ARCHITECTURE § Analysis.
package vision

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Page is one page image prepared for submission: PNG bytes plus the
// name it was loaded from. Order across a slice of pages is meaningful,
// pages are read first to last.
type Page struct {
	Name string
	PNG  []byte
}

// Backend abstracts the vision API so tests can supply a mock. Analyze
// submits the pages in order and returns the raw response text.
type Backend interface {
	Analyze(ctx context.Context, pages []Page) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// AnalyzeWithRetry calls the backend with exponential backoff (R4.2).
// The context cancels waits between attempts.
func AnalyzeWithRetry(ctx context.Context, backend Backend, pages []Page, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Analyze(ctx, pages)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
