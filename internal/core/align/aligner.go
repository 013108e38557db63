// Package align greedily matches sentences between an authoritative source
// and a derived rendering, producing a classified comparison report.
package align

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_sentence_diff/internal/core/diff"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

// AlignerConfig holds configuration for the sentence aligner.
type AlignerConfig struct {
	// Threshold is the minimum similarity score for two sentences to be
	// considered the same unit across documents. A score exactly at the
	// threshold counts as a match.
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() AlignerConfig {
	return AlignerConfig{
		Threshold: 0.3,
	}
}

// Validate checks if the configuration is valid.
func (c AlignerConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}

// Aligner implements greedy sentence alignment over two ordered sequences.
type Aligner struct {
	config AlignerConfig
	logger ports.Logger
	scorer ports.SimilarityScorer
	differ *diff.TokenDiffer
}

// NewAligner creates a new sentence aligner.
func NewAligner(config AlignerConfig, logger ports.Logger, scorer ports.SimilarityScorer, differ *diff.TokenDiffer) (*Aligner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Aligner{
		config: config,
		logger: logger,
		scorer: scorer,
		differ: differ,
	}, nil
}

// Align pairs up sentences between left (source) and right (rendering).
//
// For each left sentence in original order, the not-yet-consumed right
// sentence with the highest similarity score wins, ties going to the lowest
// right index. A best score at or above the threshold produces a token-level
// diff row; anything else produces a whole-sentence Missing row. Right
// sentences never consumed are appended afterward, in right order, as Extra
// rows. The scan is a single deterministic pass with no state carried across
// calls, so Align is safe for concurrent use on disjoint inputs.
//
// A cancelled context short-circuits to an empty report flagged with an
// "error" entry in Details, so callers can tell cancellation apart from an
// empty document.
func (a *Aligner) Align(ctx context.Context, left, right []string) domain.Alignment {
	a.logger.Debug("Starting sentence alignment",
		"left_sentences", len(left),
		"right_sentences", len(right),
		"threshold", a.config.Threshold,
	)

	details := make(map[string]interface{})

	result := domain.Alignment{
		Name:      "sentence_alignment",
		Rows:      make([]domain.Row, 0, len(left)),
		Threshold: a.config.Threshold,
		Details:   details,
	}

	// Check context cancellation.
	select {
	case <-ctx.Done():
		a.logger.Error("Alignment cancelled", "error", ctx.Err())
		details["error"] = "alignment cancelled"
		return result
	default:
		// continue
	}

	// Right indices consumed by earlier matches; scoped to this call only.
	consumed := make([]bool, len(right))

	for _, leftSentence := range left {
		bestScore := 0.0
		bestIndex := -1
		for i, rightSentence := range right {
			if consumed[i] {
				continue
			}
			score := a.scorer.Score(leftSentence, rightSentence)
			if score > bestScore {
				bestScore = score
				bestIndex = i
			}
		}

		if bestScore >= a.config.Threshold && bestIndex != -1 {
			consumed[bestIndex] = true
			leftSpans, rightSpans := a.differ.Diff(leftSentence, right[bestIndex])
			result.Rows = append(result.Rows, domain.Row{
				Left:  leftSpans,
				Right: rightSpans,
			})
			result.Matched++
		} else {
			result.Rows = append(result.Rows, domain.Row{
				Left:        []domain.Span{{Text: leftSentence, Class: domain.Missing}},
				MissingLeft: true,
			})
			result.MissingCount++
		}
	}

	for i, rightSentence := range right {
		if consumed[i] {
			continue
		}
		result.Rows = append(result.Rows, domain.Row{
			Right: []domain.Span{{Text: rightSentence, Class: domain.Extra}},
		})
		result.ExtraCount++
	}

	details["matched"] = result.Matched
	details["missing"] = result.MissingCount
	details["extra"] = result.ExtraCount
	details["threshold"] = a.config.Threshold

	a.logger.Debug("Computed sentence alignment",
		"rows", len(result.Rows),
		"matched", result.Matched,
		"missing", result.MissingCount,
		"extra", result.ExtraCount,
	)

	return result
}
