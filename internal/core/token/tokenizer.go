// Package token splits sentences into word-like and punctuation tokens.
package token

import (
	"regexp"

	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

// Word-like runs keep internal periods so decimals ("3.14") and abbreviations
// ("U.S.A") stay single tokens; any other non-space character is its own token.
// Whitespace is a separator and is never emitted. Word characters are spelled
// out as letters, digits and underscore because RE2's \w is ASCII-only and
// would fragment accented words.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:\.+[\p{L}\p{N}_]+)*|[^\p{L}\p{N}_\s]`)

// RegexpTokenizer implements the default tokenization strategy.
type RegexpTokenizer struct{}

// NewTokenizer creates a new regexp-based tokenizer.
func NewTokenizer() ports.Tokenizer {
	return &RegexpTokenizer{}
}

// Tokenize returns the ordered tokens of a sentence.
func (t *RegexpTokenizer) Tokenize(sentence string) []string {
	return tokenPattern.FindAllString(sentence, -1)
}
