package ports

import (
	"context"

	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
)

// SentenceAligner defines the interface for aligning two ordered sentence sequences.
// Alignment itself never fails; a cancelled context yields an empty Alignment
// whose Details carry an "error" entry, distinguishing it from a legitimately
// empty comparison.
type SentenceAligner interface {
	Align(ctx context.Context, left, right []string) domain.Alignment
}

// SimilarityScorer computes a resemblance score in [0, 1] between two sentences.
// Implementations must be pure functions of the two input strings.
type SimilarityScorer interface {
	Score(left, right string) float64
}
