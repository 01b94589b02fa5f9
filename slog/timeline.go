package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/relic"
)

// Ensure LoggingTimeline implements relic.Timeline.
var _ relic.Timeline = (*LoggingTimeline)(nil)

// LoggingTimeline wraps a Timeline with debug logging of date resolution.
type LoggingTimeline struct {
	next   relic.Timeline
	logger *slog.Logger
}

// NewLoggingTimeline creates a new LoggingTimeline.
func NewLoggingTimeline(next relic.Timeline, logger *slog.Logger) *LoggingTimeline {
	return &LoggingTimeline{next: next, logger: logger}
}

// Add delegates to the wrapped timeline.
func (tl *LoggingTimeline) Add(id int64, t time.Time) {
	tl.next.Add(id, t)
}

// Resolve delegates to the wrapped timeline and logs the resolved date.
func (tl *LoggingTimeline) Resolve(id int64) (date time.Time, err error) {
	defer func(begin time.Time) {
		tl.logger.Debug("resolve date",
			"id", id,
			"date", date,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return tl.next.Resolve(id)
}
