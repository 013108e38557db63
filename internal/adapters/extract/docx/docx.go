// Package docx extracts sentence text from DOCX containers.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/sentence"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

const documentEntry = "word/document.xml"

// ErrNoDocumentPart is returned when the container has no word/document.xml entry.
var ErrNoDocumentPart = errors.New("docx: container has no " + documentEntry + " entry")

// Extractor reads the main document part of a DOCX container and yields its
// sentences in paragraph order.
type Extractor struct {
	splitter *sentence.Splitter
	logger   ports.Logger
}

// NewExtractor creates a new DOCX sentence extractor.
func NewExtractor(logger ports.Logger) ports.SentenceExtractor {
	return &Extractor{
		splitter: sentence.NewSplitter(),
		logger:   logger,
	}
}

// Extract parses the DOCX bytes and returns boundary-split sentences.
func (e *Extractor) Extract(data []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: opening container: %w", err)
	}

	var document *zip.File
	for _, f := range reader.File {
		if f.Name == documentEntry {
			document = f
			break
		}
	}
	if document == nil {
		return nil, ErrNoDocumentPart
	}

	rc, err := document.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: opening %s: %w", documentEntry, err)
	}
	defer rc.Close()

	root, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("docx: parsing %s: %w", documentEntry, err)
	}

	// One line per non-empty paragraph, text runs concatenated in order.
	var paragraphs []string
	for _, p := range xmlquery.Find(root, "//p") {
		var sb strings.Builder
		for _, t := range xmlquery.Find(p, ".//t") {
			sb.WriteString(t.InnerText())
		}
		text := sb.String()
		if strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	sentences := e.splitter.Split(strings.Join(paragraphs, "\n"))
	e.logger.Debug("Extracted DOCX sentences",
		"paragraphs", len(paragraphs),
		"sentences", len(sentences),
	)
	return sentences, nil
}
