package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/fwojciec/relic"
)

// CorpusDirs are the record directories below the corpus root.
var CorpusDirs = []string{"_p", "_articles", "_answers"}

var recordName = regexp.MustCompile(`^(\d+)\.md$`)

// DateFunc reads the creation date from a record's content.
type DateFunc func(data []byte) (time.Time, error)

// ScanResult is the outcome of a corpus scan.
type ScanResult struct {
	// Dates maps post identifiers to their recorded creation dates.
	Dates map[int64]time.Time

	// Invalid lists records whose date could not be read.
	Invalid []string
}

// ScanDates walks the record directories below root and reads the creation
// date of every record. Missing directories are skipped.
func ScanDates(ctx context.Context, root string, parse DateFunc) (*ScanResult, error) {
	result := &ScanResult{Dates: make(map[int64]time.Time)}

	for _, dir := range CorpusDirs {
		base := filepath.Join(root, dir)
		if _, err := os.Stat(base); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			m := recordName.FindStringSubmatch(d.Name())
			if m == nil {
				return nil
			}
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			t, err := parse(data)
			if err != nil {
				result.Invalid = append(result.Invalid, path)
				return nil
			}
			result.Dates[id] = t
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, relic.Errorf(relic.EIO, "failed to scan %s: %v", base, err)
		}
	}

	return result, nil
}
