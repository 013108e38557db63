// sentence_diff.go
// Package sentencediff compares two renderings of the same logical document
// sentence by sentence and token by token. Given the ordered sentences of an
// authoritative source and of a derived rendering, it greedily pairs similar
// sentences using a character-level sequence-matching ratio, classifies
// unmatched sentences as missing or extra, and classifies every token
// position of the matched pairs as one of equal, case-diff, decimal-diff,
// diff, missing, or extra.
//
// The alignment is a pure function of its inputs: no state survives a call,
// so one SentenceDiff may serve many goroutines on disjoint inputs.
//
// This version uses the functional options pattern to allow configuration of
// parameters like the match threshold and logging.
package sentencediff

import (
	"context"

	"github.com/baditaflorin/go_sentence_diff/internal/core/align"
	"github.com/baditaflorin/go_sentence_diff/internal/core/diff"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/core/similarity"
	"github.com/baditaflorin/go_sentence_diff/internal/core/token"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/baditaflorin/l"
)

// DefaultThreshold is the minimum similarity score at which two sentences
// are considered the same unit across documents.
const DefaultThreshold = 0.3

// Alignment re-exports the report model produced by Align.
type Alignment = domain.Alignment

// Row re-exports one line of the comparison report.
type Row = domain.Row

// Span re-exports one classified run of text.
type Span = domain.Span

// TokenClass re-exports the token classification.
type TokenClass = domain.TokenClass

// Token classes, re-exported for callers inspecting spans.
const (
	Equal       = domain.Equal
	CaseDiff    = domain.CaseDiff
	DecimalDiff = domain.DecimalDiff
	Diff        = domain.Diff
	Missing     = domain.Missing
	Extra       = domain.Extra
)

// Config holds configuration options for the sentence diff.
type Config struct {
	Threshold float64
	// Logger for tracing computation steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the diff.
type Option func(*Config)

// WithThreshold sets a custom match acceptance threshold.
func WithThreshold(th float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// SentenceDiff provides methods to align and diff sentence sequences using
// configurable parameters.
type SentenceDiff struct {
	aligner ports.SentenceAligner
	logger  ports.Logger
}

// New creates a new SentenceDiff with the provided functional options.
// If no logger is provided, a default logger is created. Returns an error
// when the threshold falls outside [0, 1].
func New(opts ...Option) (*SentenceDiff, error) {
	cfg := Config{
		Threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var lg ports.Logger
	if cfg.Logger != nil {
		lg = wrapLogger(cfg.Logger)
	} else {
		var err error
		lg, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
	}

	tokenizer := token.NewTokenizer()
	differ := diff.NewTokenDiffer(tokenizer, lg)
	aligner, err := align.NewAligner(
		align.AlignerConfig{Threshold: cfg.Threshold},
		lg,
		similarity.NewRatioScorer(),
		differ,
	)
	if err != nil {
		return nil, err
	}

	return &SentenceDiff{aligner: aligner, logger: lg}, nil
}

// Align compares the left (source) sentences against the right (rendered)
// sentences. Rows derived from left keep left's order and come first;
// unmatched right sentences follow in right's order.
func (sd *SentenceDiff) Align(ctx context.Context, left, right []string) Alignment {
	return sd.aligner.Align(ctx, left, right)
}
