package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
)

// Run executes the dedupe command.
func (c *DedupeCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	var records []relic.Snapshot
	if c.CDX {
		records, err = fs.ReadCDX(f, c.Prefix)
	} else {
		records, err = fs.ReadSnapshots(f)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	kept := relic.SortSnapshots(relic.DedupeSnapshots(records))

	var buf bytes.Buffer
	if err := fs.WriteSnapshots(&buf, kept); err != nil {
		return err
	}
	if err := writeOutput(deps, c.Output, buf.Bytes()); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Kept %d of %d snapshots\n", len(kept), len(records))
	return nil
}
