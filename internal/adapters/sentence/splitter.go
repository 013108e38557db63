// Package sentence splits extracted document text into sentences.
package sentence

import (
	"regexp"
	"strings"
)

// A sentence boundary is sentence-ending punctuation followed by whitespace
// followed by a capital letter. The capital letter starts the next sentence.
// RE2 has no lookarounds, so the boundary is located by index instead.
var boundaryPattern = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// Splitter implements the fixed sentence boundary heuristic.
type Splitter struct{}

// NewSplitter creates a new sentence splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split returns the trimmed, non-empty sentences of text in order.
func (s *Splitter) Split(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range boundaryPattern.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation character, loc[1]-1 the capital letter.
		appendTrimmed(&sentences, text[prev:loc[0]+1])
		prev = loc[1] - 1
	}
	appendTrimmed(&sentences, text[prev:])
	return sentences
}

func appendTrimmed(sentences *[]string, s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		*sentences = append(*sentences, s)
	}
}
