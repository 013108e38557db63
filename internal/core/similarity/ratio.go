// Package similarity scores sentence resemblance with a character-level
// sequence-matching ratio.
package similarity

import (
	"strings"

	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/pmezard/go-difflib/difflib"
)

// RatioScorer computes 2*M/T where M is the number of matching characters
// found by the recursive longest-matching-block algorithm and T is the
// combined length of both sentences.
type RatioScorer struct{}

// NewRatioScorer creates a new ratio-based similarity scorer.
func NewRatioScorer() ports.SimilarityScorer {
	return &RatioScorer{}
}

// Score returns the similarity ratio between two sentences in [0, 1].
// A fresh matcher is built per call so no partial state leaks between
// candidate pairs; greedy matching stays well-defined and reproducible.
func (s *RatioScorer) Score(left, right string) float64 {
	m := difflib.NewMatcher(splitChars(left), splitChars(right))
	return m.Ratio()
}

// splitChars splits a sentence into per-character elements. The matcher
// operates on sequences of strings; character granularity matches the
// reference metric this module reproduces.
func splitChars(s string) []string {
	return strings.Split(s, "")
}
