// Package restore rebuilds corpus records from captured thread pages.
// It coordinates extraction, conversion, author and date resolution, and
// emission of one record per post.
package restore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/yaml"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of captures processed at once when
// Restorer.Concurrency is not set.
const DefaultConcurrency = 4

// Restorer orchestrates the restoration of captured threads.
type Restorer struct {
	Extractor relic.Extractor

	// Converter is used for layouts without an entry in Converters.
	Converter  relic.Converter
	Converters map[relic.Layout]relic.Converter

	Users       relic.UserResolver
	Timeline    relic.Timeline
	Emitter     relic.Emitter
	Concurrency int
	Logger      *slog.Logger
}

// Result holds the outcome of a restore run.
type Result struct {
	RunID    string
	Captures int
	Emitted  []Emitted
	Failures []Failure
}

// Emitted describes one written record.
type Emitted struct {
	PostID int64
	Path   string
	Hash   string
	Bytes  int
}

// Failure describes a capture or post that was skipped.
type Failure struct {
	ThreadID int64
	// PostID is zero when the whole capture was skipped.
	PostID int64
	Source string

	// CapturedAt is when the failing capture was taken.
	CapturedAt time.Time
	Err        error
}

// ProgressEvent reports progress during a restore run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ThreadID  int64
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting restore progress.
type ProgressFunc func(event ProgressEvent)

// captureResult holds the outcome of processing a single capture.
type captureResult struct {
	position int
	threadID int64
	emitted  []Emitted
	failures []Failure
	err      error
}

// Restore processes captures concurrently and emits a record for every
// post that can be fully normalized. Extraction failures skip the capture
// and reconstruction failures skip the post; both are logged and reported
// in Result.Failures. An IO failure while emitting aborts the run and is
// returned.
func (r *Restorer) Restore(ctx context.Context, captures []*relic.Capture, progress ProgressFunc) (*Result, error) {
	logger := r.logger()
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(captures)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan captureResult, len(captures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for i, c := range captures {
			i, c := i, c
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				result := r.processCapture(gctx, logger, i, c)
				resultCh <- result
				return result.err
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	results := make([]captureResult, len(captures))
	var completed atomic.Int64
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			ThreadID:  result.threadID,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		} else if len(result.failures) > 0 && len(result.emitted) == 0 {
			event.Type = ProgressFailed
			event.Error = result.failures[0].Err
		}
		progress(event)
	}

	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Result{RunID: runID, Captures: total}
	for _, result := range results {
		out.Emitted = append(out.Emitted, result.emitted...)
		out.Failures = append(out.Failures, result.failures...)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	logger.Info("restore finished",
		"captures", total,
		"emitted", len(out.Emitted),
		"failures", len(out.Failures),
	)

	return out, nil
}

// processCapture extracts a thread and emits its posts. The returned err is
// set only for failures that abort the run.
func (r *Restorer) processCapture(ctx context.Context, logger *slog.Logger, position int, c *relic.Capture) captureResult {
	result := captureResult{position: position, threadID: c.ThreadID}

	thread, err := r.Extractor.ExtractThread(c.HTML, c.ThreadID)
	if err != nil {
		logger.Warn("capture skipped",
			"thread", c.ThreadID,
			"source", c.Source,
			"captured_at", c.CapturedAt,
			"err", err,
		)
		result.failures = append(result.failures, Failure{ThreadID: c.ThreadID, Source: c.Source, CapturedAt: c.CapturedAt, Err: err})
		return result
	}

	posts := thread.Posts()
	for _, p := range posts {
		if !p.CreatedAt.IsZero() {
			r.Timeline.Add(p.ID, p.CreatedAt)
		}
	}

	conv := r.converterFor(thread.Layout)
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			result.err = err
			return result
		}

		path, content, err := r.render(ctx, conv, p)
		if err != nil {
			if isAbort(err) {
				result.err = err
				return result
			}
			logger.Warn("post skipped",
				"thread", c.ThreadID,
				"post", p.ID,
				"variant", string(p.Variant),
				"captured_at", c.CapturedAt,
				"err", err,
			)
			result.failures = append(result.failures, Failure{
				ThreadID:   c.ThreadID,
				PostID:     p.ID,
				Source:     c.Source,
				CapturedAt: c.CapturedAt,
				Err:        err,
			})
			continue
		}

		if err := r.Emitter.Emit(ctx, path, content); err != nil {
			if relic.ErrorCode(err) != relic.EIO && !isAbort(err) {
				err = relic.Errorf(relic.EIO, "failed to emit %s: %v", path, err)
			}
			result.err = err
			return result
		}

		result.emitted = append(result.emitted, Emitted{
			PostID: p.ID,
			Path:   path,
			Hash:   relic.ContentHash(content),
			Bytes:  len(content),
		})
	}

	return result
}

// render builds the canonical path and full record content for a post.
func (r *Restorer) render(ctx context.Context, conv relic.Converter, raw *relic.RawPost) (path, content string, err error) {
	markdown, err := conv.Convert(raw.ContentHTML)
	if err != nil {
		return "", "", fmt.Errorf("convert post %d: %w", raw.ID, err)
	}

	post := &relic.Post{
		ID:       raw.ID,
		Variant:  raw.Variant,
		ParentID: raw.ParentID,
		Title:    raw.Title,
		Tags:     raw.Tags,
		Upvote:   raw.Upvote,
		Downvote: raw.Downvote,
		Follow:   raw.Follow,
		Comments: raw.Comments,
		Content:  markdown,
	}

	if raw.Variant != relic.VariantQuestion {
		post.User, err = r.Users.ResolveUser(ctx, raw.Author)
		if err != nil {
			return "", "", fmt.Errorf("resolve author of post %d: %w", raw.ID, err)
		}
	}

	post.Date, err = r.Timeline.Resolve(raw.ID)
	if err != nil {
		return "", "", err
	}

	if err := post.Validate(); err != nil {
		return "", "", err
	}

	content, err = yaml.FormatPost(relic.BuildFrontMatter(post), post.Content)
	if err != nil {
		return "", "", fmt.Errorf("format post %d: %w", raw.ID, err)
	}
	return post.Path(), content, nil
}

func (r *Restorer) converterFor(layout relic.Layout) relic.Converter {
	if c, ok := r.Converters[layout]; ok {
		return c
	}
	return r.Converter
}

func (r *Restorer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func isAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
