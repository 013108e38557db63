package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/report"
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/stream"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/baditaflorin/go_sentence_diff/pkg/align"
	"github.com/baditaflorin/go_sentence_diff/pkg/compare"
	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	threshold float64
	outputDir string
	timeout   time.Duration
	verbose   bool

	// compare flags
	docxDir     string
	htmlDir     string
	concurrency int

	// Logger
	log l.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sentencediff",
	Short: "Sentence-level visual diff between a source document and its rendering",
	Long: `sentencediff compares two renderings of the same logical document and
produces a sentence-by-sentence, token-by-token visual diff highlighting
additions, omissions, case differences, and numeric-formatting differences.

Sentences are paired greedily by a character-level similarity ratio; matched
pairs are diffed token by token, everything else is reported as missing
(source-only) or extra (rendering-only).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = createLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Close()
		}
	},
}

// compareCmd pairs DOCX and HTML files by filename stem and compares each pair
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare paired DOCX and HTML directories",
	Long: `Scans the two directories, joins files that share a filename stem
(report.docx with report.html), and writes one comparison page per pair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		pairs, err := compare.PairByStem(docxDir, htmlDir)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return fmt.Errorf("no paired documents found in %s and %s", docxDir, htmlDir)
		}

		comparer, err := compare.New(
			compare.WithThreshold(threshold),
			compare.WithOutputDir(outputDir),
			compare.WithLogger(log),
		)
		if err != nil {
			return err
		}

		outcomes := comparer.CompareAll(ctx, pairs, concurrency)

		failed := 0
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", outcome.Name, outcome.Err)
				continue
			}
			fmt.Printf("%s: %d matched, %d missing, %d extra -> %s\n",
				outcome.Name,
				outcome.Alignment.Matched,
				outcome.Alignment.MissingCount,
				outcome.Alignment.ExtraCount,
				outcome.ReportPath,
			)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d comparisons failed", failed, len(outcomes))
		}
		return nil
	},
}

// alignCmd aligns two plain-text files sentence by sentence
var alignCmd = &cobra.Command{
	Use:   "align <source.txt> <rendered.txt>",
	Short: "Align two plain-text files sentence by sentence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		adapted := logger.FromExisting(log)
		streamer := stream.NewStreamer(adapted)

		left, err := streamFile(ctx, streamer, args[0])
		if err != nil {
			return err
		}
		right, err := streamFile(ctx, streamer, args[1])
		if err != nil {
			return err
		}

		aligner, err := align.New(
			align.WithThreshold(threshold),
			align.WithLogger(log),
		)
		if err != nil {
			return err
		}

		alignment := aligner.Align(ctx, left, right)

		renderer := report.NewHTMLRenderer()
		for _, row := range alignment.Rows {
			leftMarkup, rightMarkup := renderer.RenderRow(row)
			fmt.Printf("%s\t%s\n", leftMarkup, rightMarkup)
		}
		fmt.Fprintf(os.Stderr, "%d matched, %d missing, %d extra (threshold %.2f)\n",
			alignment.Matched, alignment.MissingCount, alignment.ExtraCount, alignment.Threshold)
		return nil
	},
}

func streamFile(ctx context.Context, streamer ports.SentenceStreamer, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return streamer.StreamSentences(ctx, f)
}

func createLogger(verbose bool) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  verbose,
	})
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", 0.3, "minimum similarity for two sentences to match")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "comparisons", "directory for comparison pages")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall time budget")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	compareCmd.Flags().StringVar(&docxDir, "docx-dir", "", "directory holding source DOCX files")
	compareCmd.Flags().StringVar(&htmlDir, "html-dir", "", "directory holding rendered HTML files")
	compareCmd.Flags().IntVar(&concurrency, "concurrency", 4, "document pairs compared in parallel")
	compareCmd.MarkFlagRequired("docx-dir")
	compareCmd.MarkFlagRequired("html-dir")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(alignCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
