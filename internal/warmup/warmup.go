// Package warmup pre-exercises alignment components so pools and caches are
// hot before the first real comparison.
package warmup

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

// WarmupConfig defines configuration for warming up the system.
type WarmupConfig struct {
	// Number of concurrent warmup routines to run.
	Concurrency int
	// Number of iterations per routine.
	Iterations int
	// Number of sample sentences per generated document.
	SampleSentences int
	// Warmup duration (0 means no time limit).
	Duration time.Duration
	// Whether to perform GC after warmup.
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:     runtime.NumCPU(),
		Iterations:      200,
		SampleSentences: 20,
		Duration:        5 * time.Second,
		ForceGC:         true,
	}
}

// Manager handles system warmup operations.
type Manager struct {
	logger     ports.Logger
	aligners   []ports.SentenceAligner
	scorers    []ports.SimilarityScorer
	tokenizers []ports.Tokenizer
	config     WarmupConfig
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterAligner adds an aligner to be warmed up.
func (wm *Manager) RegisterAligner(a ports.SentenceAligner) {
	wm.aligners = append(wm.aligners, a)
}

// RegisterScorer adds a similarity scorer to be warmed up.
func (wm *Manager) RegisterScorer(s ports.SimilarityScorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterTokenizer adds a tokenizer to be warmed up.
func (wm *Manager) RegisterTokenizer(t ports.Tokenizer) {
	wm.tokenizers = append(wm.tokenizers, t)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.aligners)+len(wm.scorers)+len(wm.tokenizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	left := generateSentences(wm.config.SampleSentences, 0)
	right := generateSentences(wm.config.SampleSentences, 3)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}

				for _, tokenizer := range wm.tokenizers {
					_ = tokenizer.Tokenize(left[j%len(left)])
				}
				for _, scorer := range wm.scorers {
					_ = scorer.Score(left[j%len(left)], right[j%len(right)])
				}
				for _, aligner := range wm.aligners {
					_ = aligner.Align(warmupCtx, left, right)
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// generateSentences builds count sample sentences; shift varies the wording
// so matched, shifted, and unrelated pairs all occur during warmup.
func generateSentences(count, shift int) []string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"revenue", "grew", "3.5", "percent", "during", "the", "quarter",
		"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "elit",
	}

	sentences := make([]string, 0, count)
	for i := 0; i < count; i++ {
		a := words[(i*3+shift)%len(words)]
		b := words[(i*5+shift)%len(words)]
		c := words[(i*7+shift)%len(words)]
		sentences = append(sentences, fmt.Sprintf("The %s %s ran past the %s quickly.", a, b, c))
	}
	return sentences
}
