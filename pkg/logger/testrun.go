package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler writes plain text records to w. Tests usually pass
// io.Discard.
func NewTestHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, nil)
}
