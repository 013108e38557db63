package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPairByStem(t *testing.T) {
	docxDir := t.TempDir()
	htmlDir := t.TempDir()

	annual := writeFile(t, docxDir, "annual.docx", "docx")
	writeFile(t, docxDir, "orphan.docx", "docx")
	writeFile(t, docxDir, "notes.txt", "ignored")

	annualHTML := writeFile(t, htmlDir, "annual.html", "html")
	quarterly := writeFile(t, docxDir, "quarterly.docx", "docx")
	quarterlyHTML := writeFile(t, htmlDir, "quarterly.htm", "html")
	writeFile(t, htmlDir, "stray.html", "html")

	pairs, err := PairByStem(docxDir, htmlDir)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Name: "annual", DocxPath: annual, HTMLPath: annualHTML},
		{Name: "quarterly", DocxPath: quarterly, HTMLPath: quarterlyHTML},
	}, pairs)
}

func TestPairByStemAmbiguous(t *testing.T) {
	docxDir := t.TempDir()
	htmlDir := t.TempDir()

	writeFile(t, docxDir, "report.docx", "docx")
	writeFile(t, htmlDir, "report.html", "html")
	writeFile(t, htmlDir, "report.htm", "html")

	_, err := PairByStem(docxDir, htmlDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous pairing")
}

func TestPairByStemMissingDirectory(t *testing.T) {
	_, err := PairByStem(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}
