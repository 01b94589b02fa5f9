package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/relic"
)

// Ensure LoggingUserDirectory implements relic.UserDirectory.
var _ relic.UserDirectory = (*LoggingUserDirectory)(nil)

// LoggingUserDirectory wraps a UserDirectory with debug logging.
type LoggingUserDirectory struct {
	next   relic.UserDirectory
	logger *slog.Logger
}

// NewLoggingUserDirectory creates a new LoggingUserDirectory.
func NewLoggingUserDirectory(next relic.UserDirectory, logger *slog.Logger) *LoggingUserDirectory {
	return &LoggingUserDirectory{next: next, logger: logger}
}

// FindUserByName delegates to the wrapped directory and logs whether the
// name was found. A miss is not logged as an error.
func (d *LoggingUserDirectory) FindUserByName(ctx context.Context, name string) (u *relic.User, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"name", name,
			"found", u != nil,
			"duration", time.Since(begin),
		}
		if err != nil && relic.ErrorCode(err) != relic.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		d.logger.Debug("find user", attrs...)
	}(time.Now())
	return d.next.FindUserByName(ctx, name)
}
