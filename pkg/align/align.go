// Package align exposes the sentence alignment engine with configurable options.
package align

import (
	"context"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_diff/internal/core/align"
	"github.com/baditaflorin/go_sentence_diff/internal/core/diff"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/core/similarity"
	"github.com/baditaflorin/go_sentence_diff/internal/core/token"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/baditaflorin/go_sentence_diff/internal/warmup"
	"github.com/baditaflorin/l"
)

// SentenceAligner provides methods to align two ordered sentence sequences
// and classify every token position of the matched pairs.
type SentenceAligner struct {
	aligner   ports.SentenceAligner
	tokenizer ports.Tokenizer
	scorer    ports.SimilarityScorer
	logger    ports.Logger
	warmed    bool
}

// Option defines a functional option for configuring SentenceAligner.
type Option func(*alignerConfig)

type alignerConfig struct {
	Threshold    float64
	Logger       ports.Logger
	Scorer       ports.SimilarityScorer
	Tokenizer    ports.Tokenizer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithThreshold sets a custom match acceptance threshold.
func WithThreshold(th float64) Option {
	return func(cfg *alignerConfig) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *alignerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithExistingLogger sets an already-adapted logger.
func WithExistingLogger(lg ports.Logger) Option {
	return func(cfg *alignerConfig) {
		cfg.Logger = lg
	}
}

// WithScorer sets a custom similarity scorer.
func WithScorer(scorer ports.SimilarityScorer) Option {
	return func(cfg *alignerConfig) {
		cfg.Scorer = scorer
	}
}

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(tokenizer ports.Tokenizer) Option {
	return func(cfg *alignerConfig) {
		cfg.Tokenizer = tokenizer
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *alignerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *alignerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new SentenceAligner instance. It returns an error when the
// configured threshold falls outside [0, 1].
func New(opts ...Option) (*SentenceAligner, error) {
	defaultConfig := align.DefaultConfig()

	config := &alignerConfig{
		Threshold:    defaultConfig.Threshold,
		WarmUp:       false,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Scorer == nil {
		config.Scorer = similarity.NewRatioScorer()
	}
	if config.Tokenizer == nil {
		config.Tokenizer = token.NewTokenizer()
	}

	differ := diff.NewTokenDiffer(config.Tokenizer, config.Logger)
	coreAligner, err := align.NewAligner(
		align.AlignerConfig{Threshold: config.Threshold},
		config.Logger,
		config.Scorer,
		differ,
	)
	if err != nil {
		return nil, err
	}

	sa := &SentenceAligner{
		aligner:   coreAligner,
		tokenizer: config.Tokenizer,
		scorer:    config.Scorer,
		logger:    config.Logger,
		warmed:    false,
	}

	if config.WarmUp {
		sa.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return sa, nil
}

// Align aligns the left (source) sentences against the right (rendered)
// sentences and returns the classified report rows.
func (sa *SentenceAligner) Align(ctx context.Context, left, right []string) domain.Alignment {
	return sa.aligner.Align(ctx, left, right)
}

// WarmUp performs system warm-up to optimize performance.
func (sa *SentenceAligner) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if sa.warmed {
		sa.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(sa.logger, config)
	warmupMgr.RegisterAligner(sa.aligner)
	warmupMgr.RegisterScorer(sa.scorer)
	warmupMgr.RegisterTokenizer(sa.tokenizer)

	warmupMgr.WarmUp(ctx)
	sa.warmed = true
}
