package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair joins one source document and one rendered document under a shared
// identifier, the filename stem. Pairing happens before the core is invoked;
// the alignment engine never sees filenames.
type Pair struct {
	Name     string
	DocxPath string
	HTMLPath string
}

// PairByStem scans the two directories and joins files that share a filename
// stem: report.docx pairs with report.html. Files without a counterpart are
// ignored. Pairs come back sorted by name so batch runs are reproducible.
func PairByStem(docxDir, htmlDir string) ([]Pair, error) {
	docxFiles, err := filesByStem(docxDir, ".docx")
	if err != nil {
		return nil, err
	}
	htmlFiles, err := filesByStem(htmlDir, ".html", ".htm")
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for stem, docxPath := range docxFiles {
		htmlPath, ok := htmlFiles[stem]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{
			Name:     stem,
			DocxPath: docxPath,
			HTMLPath: htmlPath,
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs, nil
}

// filesByStem maps filename stems to full paths for files carrying one of the
// given extensions. A duplicate stem within a directory is an error since the
// join would be ambiguous.
func filesByStem(dir string, extensions ...string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !contains(extensions, ext) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if existing, ok := files[stem]; ok {
			return nil, fmt.Errorf("ambiguous pairing in %s: %s and %s share the stem %q",
				dir, filepath.Base(existing), name, stem)
		}
		files[stem] = filepath.Join(dir, name)
	}
	return files, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
