package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
)

// Run executes the cache command.
func (c *CacheCmd) Run(deps *Dependencies) error {
	results, err := fs.ReadSearchResults(c.Dir, c.Prefix)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	records := make([]*relic.CacheRecord, 0, len(results))
	for _, r := range results {
		rec, err := relic.ParseCacheRecord(r.Title, r.URL, r.CacheURL)
		if err != nil {
			deps.Logger.Warn("search result skipped", "url", r.URL, "err", relic.ErrorMessage(err))
			continue
		}
		records = append(records, rec)
	}
	unique := relic.UniqueCacheRecords(records)

	var buf bytes.Buffer
	if err := fs.WriteCacheRecords(&buf, unique); err != nil {
		return err
	}
	if err := writeOutput(deps, c.Output, buf.Bytes()); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Indexed %d cached pages from %d results\n", len(unique), len(results))
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(deps *Dependencies, path string, data []byte) error {
	if path == "" {
		_, err := deps.Stdout.Write(data)
		return err
	}
	w := fs.NewWriter(filepath.Dir(path))
	if err := w.Emit(deps.Ctx, filepath.Base(path), string(data)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}
	return nil
}
