// Package report serializes alignment spans to HTML and writes comparison pages.
package report

import (
	"html"

	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/pool"
)

// HTMLRenderer serializes classified spans into inline HTML markup. Equal
// spans render as plain text; every other class is wrapped in a span element
// whose class attribute carries the token class as a style hook.
type HTMLRenderer struct {
	builders *pool.StringBuilderPool
}

// NewHTMLRenderer creates a new HTML span renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		builders: pool.NewStringBuilderPool(),
	}
}

// RenderSide renders one side of a report row, tokens space-joined.
func (r *HTMLRenderer) RenderSide(spans []domain.Span) string {
	sb := r.builders.Get()
	defer r.builders.Put(sb)

	for i, span := range spans {
		if i > 0 {
			sb.WriteString(" ")
		}
		if span.Class == domain.Equal {
			sb.WriteString(html.EscapeString(span.Text))
			continue
		}
		sb.WriteString(`<span class="`)
		sb.WriteString(span.Class.String())
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(span.Text))
		sb.WriteString(`</span>`)
	}

	return sb.String()
}

// RenderRow renders both sides of a report row.
func (r *HTMLRenderer) RenderRow(row domain.Row) (left, right string) {
	return r.RenderSide(row.Left), r.RenderSide(row.Right)
}
