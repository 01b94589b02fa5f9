package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/relic"
)

// Ensure LoggingEmitter implements relic.Emitter.
var _ relic.Emitter = (*LoggingEmitter)(nil)

// LoggingEmitter wraps an Emitter with logging.
type LoggingEmitter struct {
	next   relic.Emitter
	logger *slog.Logger
}

// NewLoggingEmitter creates a new LoggingEmitter.
func NewLoggingEmitter(next relic.Emitter, logger *slog.Logger) *LoggingEmitter {
	return &LoggingEmitter{next: next, logger: logger}
}

// Emit delegates to the wrapped emitter and logs the written path.
func (e *LoggingEmitter) Emit(ctx context.Context, path, content string) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("emit",
			"path", path,
			"bytes", len(content),
			"hash", relic.ContentHash(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Emit(ctx, path, content)
}
