// Package htmltext extracts visible sentence text from HTML documents.
package htmltext

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/sentence"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

// Elements whose subtrees carry no visible document text.
var skippedElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"header":   true,
	"footer":   true,
	"nav":      true,
}

// Extractor strips markup from HTML and yields the visible sentences.
type Extractor struct {
	splitter *sentence.Splitter
	logger   ports.Logger
}

// NewExtractor creates a new HTML sentence extractor.
func NewExtractor(logger ports.Logger) ports.SentenceExtractor {
	return &Extractor{
		splitter: sentence.NewSplitter(),
		logger:   logger,
	}
}

// Extract parses the HTML bytes and returns boundary-split visible sentences.
func (e *Extractor) Extract(data []byte) ([]string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("htmltext: parsing document: %w", err)
	}

	var lines []string
	collectText(root, &lines)

	sentences := e.splitter.Split(strings.Join(lines, " "))
	e.logger.Debug("Extracted HTML sentences",
		"lines", len(lines),
		"sentences", len(sentences),
	)
	return sentences, nil
}

// collectText walks the DOM depth-first, gathering trimmed non-empty text
// nodes and pruning subtrees that never contribute visible document text.
func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		for _, line := range strings.Split(n.Data, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				*lines = append(*lines, line)
			}
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, lines)
	}
}
