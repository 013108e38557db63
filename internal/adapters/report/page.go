package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Comparison: {{.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.5em; vertical-align: top; width: 50%; }
th { background: #f0f0f0; text-align: left; }
.missing { background: #ffd6d6; }
.extra { background: #d6e8ff; }
.case-diff { background: #fff3c4; }
.decimal-diff { background: #ffe0b3; }
.diff { background: #ffc4c4; }
.summary { margin-bottom: 1em; color: #555; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p class="summary">{{.Matched}} matched, {{.Missing}} missing, {{.Extra}} extra (threshold {{printf "%.2f" .Threshold}})</p>
<table>
<tr><th>Source document</th><th>Rendered document</th></tr>
{{range .Rows}}<tr><td>{{.Left}}</td><td>{{.Right}}</td></tr>
{{end}}</table>
</body>
</html>
`

type pageRow struct {
	Left  template.HTML
	Right template.HTML
}

type pageData struct {
	Name      string
	Matched   int
	Missing   int
	Extra     int
	Threshold float64
	Rows      []pageRow
}

// PageWriter renders a full side-by-side comparison page per document pair
// and writes it under the configured directory.
type PageWriter struct {
	dir      string
	renderer *HTMLRenderer
	tmpl     *template.Template
	logger   ports.Logger
}

// NewPageWriter creates a page writer rooted at dir, creating it if needed.
func NewPageWriter(dir string, logger ports.Logger) (ports.ReportSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: creating output directory: %w", err)
	}
	return &PageWriter{
		dir:      dir,
		renderer: NewHTMLRenderer(),
		tmpl:     template.Must(template.New("comparison").Parse(pageTemplate)),
		logger:   logger,
	}, nil
}

// Write renders the alignment as an HTML page named <name>_compare.html and
// returns the written path.
func (w *PageWriter) Write(name string, alignment domain.Alignment) (string, error) {
	data := pageData{
		Name:      name,
		Matched:   alignment.Matched,
		Missing:   alignment.MissingCount,
		Extra:     alignment.ExtraCount,
		Threshold: alignment.Threshold,
		Rows:      make([]pageRow, 0, len(alignment.Rows)),
	}
	for _, row := range alignment.Rows {
		left, right := w.renderer.RenderRow(row)
		// Sides are pre-rendered and pre-escaped by the span renderer.
		data.Rows = append(data.Rows, pageRow{
			Left:  template.HTML(left),
			Right: template.HTML(right),
		})
	}

	path := filepath.Join(w.dir, name+"_compare.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := w.tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("report: rendering %s: %w", path, err)
	}

	w.logger.Debug("Wrote comparison page", "name", name, "path", path, "rows", len(data.Rows))
	return path, nil
}
