// logger.go
// Package sentencediff provides shared logging utilities for the root facade.
package sentencediff

import (
	"github.com/baditaflorin/go_sentence_diff/internal/adapters/logger"
	"github.com/baditaflorin/go_sentence_diff/internal/ports"
	"github.com/baditaflorin/l"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}

// wrapLogger adapts an l.Logger to the internal logging interface.
func wrapLogger(lg l.Logger) ports.Logger {
	return logger.FromExisting(lg)
}
