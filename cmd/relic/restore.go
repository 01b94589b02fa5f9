package main

import (
	"fmt"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
	"github.com/fwojciec/relic/restore"
	relicslog "github.com/fwojciec/relic/slog"
	"github.com/fwojciec/relic/timeline"
	"github.com/fwojciec/relic/yaml"
)

// Run executes the restore command.
func (c *RestoreCmd) Run(deps *Dependencies) error {
	captures, err := fs.ReadCaptures(c.Captures)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	scan, err := fs.ScanDates(deps.Ctx, c.Out, yaml.ParseDate)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}
	for _, p := range scan.Invalid {
		deps.Logger.Warn("record date unreadable", "path", p)
	}

	index := timeline.Load(scan.Dates, timeline.WithPolicy(c.policy()))
	deps.Restorer.Timeline = relicslog.NewLoggingTimeline(index, deps.Logger)

	fmt.Fprintf(deps.Stdout, "Indexed %d known dates (%s neighbours)\n", index.Len(), c.policy())

	progress := func(event restore.ProgressEvent) {
		switch event.Type {
		case restore.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d captures\n", event.Total)
		case restore.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip thread %d: %s\n", event.ThreadID, describe(event.Error))
		}
	}

	result, err := deps.Restorer.Restore(deps.Ctx, captures, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error restoring: %v\n", err)
		return err
	}

	var unchanged int
	if deps.Writer != nil {
		unchanged = deps.Writer.Stats().Unchanged
	}
	fmt.Fprintf(deps.Stdout, "  Wrote %d records (%s), %d unchanged, skipped %d (run %s)\n",
		len(result.Emitted), restore.FormatBytes(result.Bytes()), unchanged, len(result.Failures), result.RunID)
	return nil
}

// describe renders an error for the terminal, preferring the domain message.
func describe(err error) string {
	if code := relic.ErrorCode(err); code != "" && code != relic.EINTERNAL {
		return code + ": " + relic.ErrorMessage(err)
	}
	return err.Error()
}
