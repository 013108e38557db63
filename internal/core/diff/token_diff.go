// Package diff performs position-by-position token classification between a
// source sentence and its rendered counterpart.
package diff

import (
	"strings"

	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/core/numeric"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

// TokenDiffer aligns two token sequences index by index and classifies every
// position. This is deliberately positional, not an edit-distance diff: a
// token inserted mid-sentence shifts everything after it into Diff. Output
// parity with the reference behavior requires keeping it that way.
type TokenDiffer struct {
	tokenizer ports.Tokenizer
	logger    ports.Logger
}

// NewTokenDiffer creates a new token differ.
func NewTokenDiffer(tokenizer ports.Tokenizer, logger ports.Logger) *TokenDiffer {
	return &TokenDiffer{
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Diff tokenizes both sentences and returns the classified spans for the left
// (source) and right (rendered) side. Every position from 0 to
// max(len(left), len(right))-1 resolves to exactly one class.
func (d *TokenDiffer) Diff(leftSentence, rightSentence string) (left, right []domain.Span) {
	leftTokens := d.tokenizer.Tokenize(leftSentence)
	rightTokens := d.tokenizer.Tokenize(rightSentence)

	maxLen := len(leftTokens)
	if len(rightTokens) > maxLen {
		maxLen = len(rightTokens)
	}

	left = make([]domain.Span, 0, len(leftTokens))
	right = make([]domain.Span, 0, len(rightTokens))

	for i := 0; i < maxLen; i++ {
		if i >= len(leftTokens) {
			right = append(right, domain.Span{Text: rightTokens[i], Class: domain.Extra})
			continue
		}
		if i >= len(rightTokens) {
			left = append(left, domain.Span{Text: leftTokens[i], Class: domain.Missing})
			continue
		}

		class := classify(leftTokens[i], rightTokens[i])
		left = append(left, domain.Span{Text: leftTokens[i], Class: class})
		right = append(right, domain.Span{Text: rightTokens[i], Class: class})
	}

	return left, right
}

// classify resolves one aligned token pair to a class.
func classify(a, b string) domain.TokenClass {
	if a == b {
		return domain.Equal
	}
	if strings.EqualFold(a, b) {
		return domain.CaseDiff
	}
	if numeric.Equal(a, b) {
		return domain.DecimalDiff
	}
	return domain.Diff
}
