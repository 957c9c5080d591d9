package helpers

import (
	"context"
	"io"
	"log/slog"

	"github.com/granaapp/grana-backend/pkg/logger"
)

// TestCtx returns a context carrying a discard logger.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(io.Discard))
	return logger.ToContext(context.Background(), log)
}
