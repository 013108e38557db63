package domain

// TokenClass classifies one aligned token position.
type TokenClass int

const (
	// Equal means the tokens are byte-for-byte identical.
	Equal TokenClass = iota
	// CaseDiff means the tokens differ only in letter case.
	CaseDiff
	// DecimalDiff means both tokens parse to the same numeric value but render differently.
	DecimalDiff
	// Diff means the token content actually differs.
	Diff
	// Missing means the source token has no counterpart in the rendering.
	Missing
	// Extra means the rendering token has no counterpart in the source.
	Extra
)

// String returns the class name used by report renderers as a style hook.
func (c TokenClass) String() string {
	switch c {
	case Equal:
		return "equal"
	case CaseDiff:
		return "case-diff"
	case DecimalDiff:
		return "decimal-diff"
	case Diff:
		return "diff"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	default:
		return "unknown"
	}
}

// Span is one classified run of text. The core emits spans; serializing them
// to any particular markup is a rendering concern.
type Span struct {
	Text  string
	Class TokenClass
}

// Row is one line of the comparison report: the left (source) side, the right
// (rendered) side, and whether the left sentence found no counterpart at all.
type Row struct {
	Left        []Span
	Right       []Span
	MissingLeft bool
}

// Alignment holds the outcome of aligning two sentence sequences.
type Alignment struct {
	// Name of the metric.
	Name string
	// Rows in report order: left-derived rows first (original left order),
	// then unmatched right rows (original right order).
	Rows []Row
	// Matched is the number of accepted sentence pairs.
	Matched int
	// MissingCount is the number of left sentences without a counterpart.
	MissingCount int
	// ExtraCount is the number of right sentences without a counterpart.
	ExtraCount int
	// Threshold used to accept matches.
	Threshold float64
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}
