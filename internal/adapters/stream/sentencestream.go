// Package stream reads plain text streams and yields boundary-split sentences.
package stream

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/baditaflorin/go_sentence_diff/internal/adapters/sentence"
	"github.com/baditaflorin/go_sentence_diff/internal/pool"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
)

const (
	// MaxScannerBufferSize caps the line scanner buffer to avoid
	// "token too long" errors on pathological input.
	MaxScannerBufferSize = 1024 * 1024 // 1MB

	// cancellationCheckInterval is how many lines to read between
	// context cancellation checks.
	cancellationCheckInterval = 256
)

// Streamer scans a reader line by line and splits the accumulated text into
// sentences, so sentences spanning line breaks survive intact.
type Streamer struct {
	splitter *sentence.Splitter
	buffers  *pool.BufferPool
	logger   ports.Logger
}

// NewStreamer creates a new sentence streamer.
func NewStreamer(logger ports.Logger) ports.SentenceStreamer {
	return &Streamer{
		splitter: sentence.NewSplitter(),
		buffers:  pool.NewBufferPool(64 * 1024),
		logger:   logger,
	}
}

// StreamSentences reads the whole stream and returns its sentences in order.
// An empty stream yields no sentences and no error.
func (s *Streamer) StreamSentences(ctx context.Context, reader io.Reader) ([]string, error) {
	if reader == nil {
		s.logger.Error("Nil reader provided")
		return nil, io.ErrUnexpectedEOF
	}

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(*buf, MaxScannerBufferSize)

	var lines []string
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		if lineCount%cancellationCheckInterval == 0 {
			select {
			case <-ctx.Done():
				s.logger.Error("Sentence streaming cancelled", "error", ctx.Err())
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("Sentence streaming failed", "error", err)
		return nil, err
	}

	sentences := s.splitter.Split(strings.Join(lines, " "))
	s.logger.Debug("Streamed sentences",
		"lines", lineCount,
		"sentences", len(sentences),
	)
	return sentences, nil
}
