package fs

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/fwojciec/relic"
)

var (
	captureDir  = regexp.MustCompile(`^\d+$`)
	captureFile = regexp.MustCompile(`^(\d+)\.html?$`)
)

// ReadCaptures reads raw thread captures from dir. A capture is either
// <id>/index.html or <id>.html, where id is the thread identifier. Other
// entries are ignored. Captures are returned in identifier order.
func ReadCaptures(dir string) ([]*relic.Capture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, relic.Errorf(relic.EIO, "failed to read captures: %v", err)
	}

	var captures []*relic.Capture
	for _, e := range entries {
		var name, path string
		switch {
		case e.IsDir() && captureDir.MatchString(e.Name()):
			name = e.Name()
			path = filepath.Join(dir, name, "index.html")
			if _, err := os.Stat(path); err != nil {
				continue
			}
		case !e.IsDir() && captureFile.MatchString(e.Name()):
			name = captureFile.FindStringSubmatch(e.Name())[1]
			path = filepath.Join(dir, e.Name())
		default:
			continue
		}

		id, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, relic.Errorf(relic.EIO, "failed to read capture %s: %v", path, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, relic.Errorf(relic.EIO, "failed to read capture %s: %v", path, err)
		}

		captures = append(captures, &relic.Capture{
			ThreadID:   id,
			Source:     path,
			CapturedAt: info.ModTime().UTC(),
			HTML:       string(data),
		})
	}

	sort.SliceStable(captures, func(i, j int) bool { return captures[i].ThreadID < captures[j].ThreadID })
	return captures, nil
}
