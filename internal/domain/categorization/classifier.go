package categorization

import (
	"context"
	"strings"
)

// Classifier produces a raw category suggestion for a merchant. The remote
// implementation talks to Gemini; tests substitute fakes.
type Classifier interface {
	Classify(ctx context.Context, merchant string) (string, error)
}

// remoteAttempt captures the outcome of one classifier call so resolution can
// stay a pure function.
type remoteAttempt struct {
	text string
	err  error
}

// resolve validates a classifier response against the category set. Exact
// matches pass through; otherwise a case-insensitive bidirectional substring
// check repairs near-misses in set order; anything else falls back to the
// keyword classifier.
func resolve(attempt remoteAttempt, merchant string) Category {
	if attempt.err != nil {
		return classifyByKeywords(merchant)
	}

	text := strings.TrimSpace(attempt.text)
	if text == "" {
		return classifyByKeywords(merchant)
	}
	if IsValid(text) {
		return Category(text)
	}

	lower := strings.ToLower(text)
	for _, c := range Categories {
		catLower := strings.ToLower(string(c))
		if strings.Contains(lower, catLower) || strings.Contains(catLower, lower) {
			return c
		}
	}

	return classifyByKeywords(merchant)
}
