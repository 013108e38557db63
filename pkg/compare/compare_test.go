package compare

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>The cat sat on the mat. </w:t></w:r><w:r><w:t>The dog ran away quickly.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Revenue was 3.0 million.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const samplePage = `<!DOCTYPE html>
<html><head><title>ignored</title></head><body>
<p>The cat sat on the mat. The dog ran away quickly.</p>
<p>Revenue was 3 million.</p>
</body></html>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestCompare(t *testing.T) {
	outDir := t.TempDir()
	comparer, err := New(WithOutputDir(outDir))
	require.NoError(t, err)

	outcome, err := comparer.Compare(context.Background(), "annual",
		buildDocx(t, sampleDocumentXML), []byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "annual", outcome.Name)
	assert.Equal(t, 3, outcome.Alignment.Matched)
	assert.Equal(t, 0, outcome.Alignment.MissingCount)
	assert.Equal(t, 0, outcome.Alignment.ExtraCount)

	assert.Equal(t, filepath.Join(outDir, "annual_compare.html"), outcome.ReportPath)
	content, err := os.ReadFile(outcome.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `<span class="decimal-diff">3</span>`)
}

func TestCompareBadSource(t *testing.T) {
	comparer, err := New(WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	_, err = comparer.Compare(context.Background(), "broken",
		[]byte("not a document"), []byte(samplePage))
	require.Error(t, err)
}

func TestCompareAll(t *testing.T) {
	docxDir := t.TempDir()
	htmlDir := t.TempDir()

	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(
			filepath.Join(docxDir, name+".docx"), buildDocx(t, sampleDocumentXML), 0o644))
		require.NoError(t, os.WriteFile(
			filepath.Join(htmlDir, name+".html"), []byte(samplePage), 0o644))
	}

	pairs, err := PairByStem(docxDir, htmlDir)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	comparer, err := New(WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	outcomes := comparer.CompareAll(context.Background(), pairs, 2)
	require.Len(t, outcomes, 3)
	for i, outcome := range outcomes {
		require.NoError(t, outcome.Err)
		assert.Equal(t, names[i], outcome.Name)
		assert.Equal(t, 3, outcome.Alignment.Matched)
	}
}
