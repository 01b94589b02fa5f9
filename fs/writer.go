// Package fs provides file-based storage for the corpus and its inputs.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/relic"
)

// Ensure Writer implements relic.Emitter at compile time.
var _ relic.Emitter = (*Writer)(nil)

// Writer writes corpus records under a root directory.
type Writer struct {
	baseDir string

	written   atomic.Int64
	unchanged atomic.Int64
}

// WriteStats counts the records handled by a Writer.
type WriteStats struct {
	Written   int
	Unchanged int
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Emit writes content to the canonical path, replacing any existing record.
// The content is written to a temporary file first and renamed into place,
// so a record is never left half written. A record whose content hash
// matches the new content is left untouched.
func (w *Writer) Emit(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := w.resolve(path)
	if err != nil {
		return err
	}

	if sameContent(fullPath, content) {
		w.unchanged.Add(1)
		return nil
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return relic.Errorf(relic.EIO, "failed to create %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return relic.Errorf(relic.EIO, "failed to write %s: %v", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return relic.Errorf(relic.EIO, "failed to write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return relic.Errorf(relic.EIO, "failed to write %s: %v", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return relic.Errorf(relic.EIO, "failed to write %s: %v", path, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return relic.Errorf(relic.EIO, "failed to write %s: %v", path, err)
	}
	w.written.Add(1)
	return nil
}

// Stats returns the number of records written and left unchanged so far.
func (w *Writer) Stats() WriteStats {
	return WriteStats{
		Written:   int(w.written.Load()),
		Unchanged: int(w.unchanged.Load()),
	}
}

// sameContent reports whether the file at path already holds content.
// Unreadable files are treated as different.
func sameContent(path, content string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	hash, err := relic.ReadContentHash(f)
	if err != nil {
		return false
	}
	return hash == relic.ContentHash(content)
}

// resolve maps a canonical corpus path to a file below baseDir.
func (w *Writer) resolve(path string) (string, error) {
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", relic.Errorf(relic.EINVALID, "invalid record path %q", path)
		}
	}
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) {
		return "", relic.Errorf(relic.EINVALID, "invalid record path %q", path)
	}
	return filepath.Join(w.baseDir, clean), nil
}
