package align

import (
	"context"
	"testing"

	"github.com/baditaflorin/go_sentence_diff/internal/core/diff"
	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/core/similarity"
	"github.com/baditaflorin/go_sentence_diff/internal/core/token"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newAligner(t *testing.T, threshold float64) *Aligner {
	t.Helper()
	differ := diff.NewTokenDiffer(token.NewTokenizer(), nopLogger{})
	aligner, err := NewAligner(AlignerConfig{Threshold: threshold}, nopLogger{}, similarity.NewRatioScorer(), differ)
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	return aligner
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantErr   bool
	}{
		{name: "Default", threshold: 0.3, wantErr: false},
		{name: "Zero boundary", threshold: 0, wantErr: false},
		{name: "One boundary", threshold: 1, wantErr: false},
		{name: "Negative", threshold: -0.1, wantErr: true},
		{name: "Above one", threshold: 1.5, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := AlignerConfig{Threshold: tc.threshold}.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestAlignIdenticalSentence(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(), []string{"The cat sat."}, []string{"The cat sat."})

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.MissingLeft {
		t.Error("expected MissingLeft=false")
	}
	for _, span := range append(append([]domain.Span{}, row.Left...), row.Right...) {
		if span.Class != domain.Equal {
			t.Errorf("expected all Equal, got %v for %q", span.Class, span.Text)
		}
	}
	if result.Matched != 1 {
		t.Errorf("expected 1 matched, got %d", result.Matched)
	}
}

func TestAlignDecimalDifference(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(),
		[]string{"Revenue was 3.0 million."},
		[]string{"Revenue was 3.00 million."},
	)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	decimalSeen := false
	for i, span := range row.Left {
		if span.Text == "3.0" {
			decimalSeen = true
			if span.Class != domain.DecimalDiff {
				t.Errorf("expected DecimalDiff for %q, got %v", span.Text, span.Class)
			}
			if row.Right[i].Class != domain.DecimalDiff || row.Right[i].Text != "3.00" {
				t.Errorf("expected right DecimalDiff %q, got %v %q", "3.00", row.Right[i].Class, row.Right[i].Text)
			}
			continue
		}
		if span.Class != domain.Equal {
			t.Errorf("expected Equal for %q, got %v", span.Text, span.Class)
		}
	}
	if !decimalSeen {
		t.Error("token 3.0 not found in left spans")
	}
}

func TestAlignCaseDifference(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(), []string{"Hello World"}, []string{"hello world"})

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	for _, span := range result.Rows[0].Left {
		if span.Class != domain.CaseDiff {
			t.Errorf("expected CaseDiff, got %v for %q", span.Class, span.Text)
		}
	}
	for _, span := range result.Rows[0].Right {
		if span.Class != domain.CaseDiff {
			t.Errorf("expected CaseDiff, got %v for %q", span.Class, span.Text)
		}
	}
}

func TestAlignEmptyRight(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(), []string{"A"}, nil)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if !row.MissingLeft {
		t.Error("expected MissingLeft=true")
	}
	if len(row.Right) != 0 {
		t.Errorf("expected no right spans, got %v", row.Right)
	}
	if len(row.Left) != 1 || row.Left[0].Class != domain.Missing || row.Left[0].Text != "A" {
		t.Errorf("expected single Missing span for %q, got %v", "A", row.Left)
	}
}

func TestAlignEmptyLeft(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(), nil, []string{"B"})

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.MissingLeft {
		t.Error("expected MissingLeft=false for an extra row")
	}
	if len(row.Left) != 0 {
		t.Errorf("expected no left spans, got %v", row.Left)
	}
	if len(row.Right) != 1 || row.Right[0].Class != domain.Extra || row.Right[0].Text != "B" {
		t.Errorf("expected single Extra span for %q, got %v", "B", row.Right)
	}
}

func TestAlignBelowThreshold(t *testing.T) {
	aligner := newAligner(t, 0.3)

	// This pair scores well below 0.3, so it must not be forced into a match.
	result := aligner.Align(context.Background(),
		[]string{"aaaa bbbb cccc."},
		[]string{"zzzz qqqq rrrr"},
	)

	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows (missing + extra), got %d", len(result.Rows))
	}
	if !result.Rows[0].MissingLeft {
		t.Error("expected first row to be MissingLeft")
	}
	if len(result.Rows[1].Right) != 1 || result.Rows[1].Right[0].Class != domain.Extra {
		t.Errorf("expected second row to be Extra, got %v", result.Rows[1])
	}
	if result.Matched != 0 || result.MissingCount != 1 || result.ExtraCount != 1 {
		t.Errorf("unexpected counts: %d matched, %d missing, %d extra",
			result.Matched, result.MissingCount, result.ExtraCount)
	}
}

func TestAlignRowOrderInvariant(t *testing.T) {
	aligner := newAligner(t, 0.3)

	left := []string{
		"First sentence about revenue.",
		"zz qq ww ee rr tt",
		"Third sentence about costs.",
	}
	right := []string{
		"Third sentence about costs.",
		"First sentence about revenue.",
		"An entirely unmatched 9999 xxxx yyyy line",
	}

	result := aligner.Align(context.Background(), left, right)

	// len(result) == len(left) + unconsumed right
	if len(result.Rows) != len(left)+1 {
		t.Fatalf("expected %d rows, got %d", len(left)+1, len(result.Rows))
	}

	// Left-derived rows come first, in left order.
	if text := joinSpans(result.Rows[0].Left); text != "First sentence about revenue ." {
		t.Errorf("row 0 should derive from left[0], got %q", text)
	}
	if !result.Rows[1].MissingLeft {
		t.Error("row 1 should be the unmatched left sentence")
	}
	if text := joinSpans(result.Rows[2].Left); text != "Third sentence about costs ." {
		t.Errorf("row 2 should derive from left[2], got %q", text)
	}

	// The unmatched right row comes last.
	last := result.Rows[len(result.Rows)-1]
	if len(last.Left) != 0 || len(last.Right) != 1 || last.Right[0].Class != domain.Extra {
		t.Errorf("expected trailing Extra row, got %+v", last)
	}

	// Every right sentence contributes to exactly one row.
	rightRows := 0
	for _, row := range result.Rows {
		if len(row.Right) > 0 {
			rightRows++
		}
	}
	if rightRows != len(right) {
		t.Errorf("expected %d rows with right content, got %d", len(right), rightRows)
	}
}

func TestAlignGreedyFirstEncounteredWins(t *testing.T) {
	aligner := newAligner(t, 0.3)

	// Both right sentences score identically against the left sentence;
	// the scan uses strict > so the lower right index wins.
	result := aligner.Align(context.Background(),
		[]string{"Second sentence here."},
		[]string{"Second sentence here!", "Second sentence here!"},
	)

	if result.Matched != 1 || result.ExtraCount != 1 {
		t.Fatalf("expected 1 matched and 1 extra, got %d and %d", result.Matched, result.ExtraCount)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	// The second (unconsumed) right copy trails as Extra.
	if result.Rows[1].Right[0].Class != domain.Extra {
		t.Errorf("expected trailing Extra row, got %v", result.Rows[1].Right[0].Class)
	}
}

func TestAlignAsymmetric(t *testing.T) {
	aligner := newAligner(t, 0.3)

	left := []string{"Shared sentence one.", "Only in left 1234."}
	right := []string{"Shared sentence one."}

	forward := aligner.Align(context.Background(), left, right)
	backward := aligner.Align(context.Background(), right, left)

	// The greedy scan is order-sensitive; swapping inputs changes the
	// report shape rather than mirroring it.
	if len(forward.Rows) == len(backward.Rows) &&
		forward.MissingCount == backward.MissingCount &&
		forward.ExtraCount == backward.ExtraCount {
		t.Errorf("expected asymmetric output, got forward=%+v backward=%+v",
			countsOf(forward), countsOf(backward))
	}
}

func TestAlignCancelledContext(t *testing.T) {
	aligner := newAligner(t, 0.3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := aligner.Align(ctx, []string{"The cat sat."}, []string{"The cat sat."})

	if len(result.Rows) != 0 || result.Matched != 0 {
		t.Errorf("expected an empty report on cancellation, got %+v", result)
	}
	// Cancellation is flagged in Details so an empty report is not mistaken
	// for an empty document.
	if result.Details["error"] == nil {
		t.Error("expected Details to carry an error entry on cancellation")
	}

	// An empty comparison on a live context carries no error entry.
	plain := aligner.Align(context.Background(), nil, nil)
	if plain.Details["error"] != nil {
		t.Errorf("expected no error entry for an empty comparison, got %v", plain.Details["error"])
	}
}

func TestAlignEmptyBoth(t *testing.T) {
	aligner := newAligner(t, 0.3)

	result := aligner.Align(context.Background(), nil, nil)
	if len(result.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(result.Rows))
	}
}

func TestAlignThresholdInclusive(t *testing.T) {
	differ := diff.NewTokenDiffer(token.NewTokenizer(), nopLogger{})

	// A scorer pinned to the threshold value: score == T must match.
	aligner, err := NewAligner(AlignerConfig{Threshold: 0.5}, nopLogger{}, fixedScorer(0.5), differ)
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}

	result := aligner.Align(context.Background(), []string{"a"}, []string{"b"})
	if result.Matched != 1 {
		t.Errorf("score equal to threshold should match, got %d matched", result.Matched)
	}
}

type fixedScorer float64

func (f fixedScorer) Score(left, right string) float64 { return float64(f) }

func countsOf(a domain.Alignment) [3]int {
	return [3]int{a.Matched, a.MissingCount, a.ExtraCount}
}

func joinSpans(spans []domain.Span) string {
	out := ""
	for i, span := range spans {
		if i > 0 {
			out += " "
		}
		out += span.Text
	}
	return out
}
