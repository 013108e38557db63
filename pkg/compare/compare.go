// Package compare orchestrates full document comparisons: extraction,
// sentence alignment, and report persistence.
package compare

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/extract/docx"
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/extract/htmltext"
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/report"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/baditaflorin/go_sentence_diff/pkg/align"
	"github.com/baditaflorin/l"
)

// DocumentComparer compares an authoritative DOCX source against its rendered
// HTML counterpart and writes a comparison page per pair.
type DocumentComparer struct {
	aligner       *align.SentenceAligner
	docxExtractor ports.SentenceExtractor
	htmlExtractor ports.SentenceExtractor
	sink          ports.ReportSink
	logger        ports.Logger
}

// Option defines a functional option for configuring DocumentComparer.
type Option func(*comparerConfig)

type comparerConfig struct {
	Threshold float64
	OutputDir string
	Logger    ports.Logger
	Sink      ports.ReportSink
}

// WithThreshold sets a custom match acceptance threshold.
func WithThreshold(th float64) Option {
	return func(cfg *comparerConfig) {
		cfg.Threshold = th
	}
}

// WithOutputDir sets the directory comparison pages are written to.
func WithOutputDir(dir string) Option {
	return func(cfg *comparerConfig) {
		cfg.OutputDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *comparerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithReportSink sets a custom report sink, overriding the page writer.
func WithReportSink(sink ports.ReportSink) Option {
	return func(cfg *comparerConfig) {
		cfg.Sink = sink
	}
}

// New creates a new DocumentComparer.
func New(opts ...Option) (*DocumentComparer, error) {
	config := &comparerConfig{
		Threshold: 0.3,
		OutputDir: "comparisons",
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

	aligner, err := align.New(
		align.WithThreshold(config.Threshold),
		align.WithExistingLogger(config.Logger),
	)
	if err != nil {
		return nil, err
	}

	sink := config.Sink
	if sink == nil {
		sink, err = report.NewPageWriter(config.OutputDir, config.Logger)
		if err != nil {
			return nil, err
		}
	}

	return &DocumentComparer{
		aligner:       aligner,
		docxExtractor: docx.NewExtractor(config.Logger),
		htmlExtractor: htmltext.NewExtractor(config.Logger),
		sink:          sink,
		logger:        config.Logger,
	}, nil
}

// Outcome is the result of comparing one document pair.
type Outcome struct {
	Name       string
	ReportPath string
	Alignment  domain.Alignment
	Err        error
}

// Compare extracts sentences from both documents, aligns them, writes the
// comparison page, and returns the outcome.
func (c *DocumentComparer) Compare(ctx context.Context, name string, docxData, htmlData []byte) (Outcome, error) {
	leftSentences, err := c.docxExtractor.Extract(docxData)
	if err != nil {
		return Outcome{Name: name}, fmt.Errorf("extracting source document %q: %w", name, err)
	}
	rightSentences, err := c.htmlExtractor.Extract(htmlData)
	if err != nil {
		return Outcome{Name: name}, fmt.Errorf("extracting rendered document %q: %w", name, err)
	}

	alignment := c.aligner.Align(ctx, leftSentences, rightSentences)

	path, err := c.sink.Write(name, alignment)
	if err != nil {
		return Outcome{Name: name, Alignment: alignment}, err
	}

	c.logger.Info("Compared document pair",
		"name", name,
		"matched", alignment.Matched,
		"missing", alignment.MissingCount,
		"extra", alignment.ExtraCount,
		"report", path,
	)

	return Outcome{
		Name:       name,
		ReportPath: path,
		Alignment:  alignment,
	}, nil
}

// ComparePair reads both files of a pair from disk and compares them.
func (c *DocumentComparer) ComparePair(ctx context.Context, pair Pair) (Outcome, error) {
	docxData, err := os.ReadFile(pair.DocxPath)
	if err != nil {
		return Outcome{Name: pair.Name}, fmt.Errorf("reading %s: %w", pair.DocxPath, err)
	}
	htmlData, err := os.ReadFile(pair.HTMLPath)
	if err != nil {
		return Outcome{Name: pair.Name}, fmt.Errorf("reading %s: %w", pair.HTMLPath, err)
	}
	return c.Compare(ctx, pair.Name, docxData, htmlData)
}

// CompareAll compares every pair with at most concurrency comparisons in
// flight. Comparisons are independent and share no mutable state, so they
// parallelize without coordination. Outcomes keep the order of pairs.
func (c *DocumentComparer) CompareAll(ctx context.Context, pairs []Pair, concurrency int) []Outcome {
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]Outcome, len(pairs))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, pair Pair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome, err := c.ComparePair(ctx, pair)
			outcome.Err = err
			outcomes[i] = outcome
		}(i, pair)
	}
	wg.Wait()

	return outcomes
}
