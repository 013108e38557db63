package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_sentence_diff/internal/core/domain"
)

// SentenceExtractor extracts ordered, boundary-split sentences from a raw document.
type SentenceExtractor interface {
	Extract(data []byte) ([]string, error)
}

// SentenceStreamer reads plain text from a stream and yields split sentences.
type SentenceStreamer interface {
	StreamSentences(ctx context.Context, reader io.Reader) ([]string, error)
}

// ReportSink persists a rendered comparison report under the given identifier
// and returns the location it was written to.
type ReportSink interface {
	Write(name string, alignment domain.Alignment) (string, error)
}
