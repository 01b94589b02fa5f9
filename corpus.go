package relic

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Emitter persists corpus records.
type Emitter interface {
	// Emit writes content to the canonical path, replacing any existing
	// record. Failures are reported as EIO.
	Emit(ctx context.Context, path, content string) error
}

// Timeline resolves post creation dates.
type Timeline interface {
	// Add records a known creation date.
	Add(id int64, t time.Time)

	// Resolve returns the creation date of a post, reconstructing it from
	// neighbouring posts when it is not known. Returns ERECONSTRUCT when
	// there are not enough neighbours.
	Resolve(id int64) (time.Time, error)
}

// ContentHash returns a stable hex digest of a record's content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ReadContentHash returns the ContentHash of everything read from r.
func ReadContentHash(r io.Reader) (string, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}
