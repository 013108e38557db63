package ports

// Tokenizer defines the interface for splitting a sentence into tokens.
type Tokenizer interface {
	Tokenize(sentence string) []string
}
