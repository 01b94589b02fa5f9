// Package slog provides logging decorators for relic services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/relic"
)

// Ensure LoggingExtractor implements relic.Extractor.
var _ relic.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. When a detector is set
// the detected layout is logged for threads that fail to extract.
type LoggingExtractor struct {
	next     relic.Extractor
	detector relic.LayoutDetector
	logger   *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. detector may be nil.
func NewLoggingExtractor(next relic.Extractor, detector relic.LayoutDetector, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, detector: detector, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string, variant relic.Variant) (post *relic.RawPost, err error) {
	defer func(begin time.Time) {
		var id int64
		if post != nil {
			id = post.ID
		}
		e.logger.Debug("extract post",
			"variant", string(variant),
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, variant)
}

// ExtractThread delegates to the wrapped extractor and logs the thread
// layout and answer count.
func (e *LoggingExtractor) ExtractThread(html string, threadID int64) (thread *relic.RawThread, err error) {
	defer func(begin time.Time) {
		layout := "(unknown)"
		answers := 0
		if thread != nil {
			layout = string(thread.Layout)
			answers = len(thread.Answers)
		} else if e.detector != nil {
			if l := e.detector.Detect(html); l != relic.LayoutUnknown {
				layout = string(l)
			}
		}
		e.logger.Info("extract thread",
			"thread", threadID,
			"layout", layout,
			"answers", answers,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractThread(html, threadID)
}
