package fs

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/relic"
)

// ReadSnapshots reads a snapshot list: a JSON array of [url, path] or
// [url, path, timestamp] tuples. The timestamp may be a number or a numeric
// string.
func ReadSnapshots(r io.Reader) ([]relic.Snapshot, error) {
	var rows [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "invalid snapshot list: %v", err)
	}

	out := make([]relic.Snapshot, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, relic.Errorf(relic.EINVALID, "snapshot %d: expected at least 2 fields, got %d", i, len(row))
		}
		var s relic.Snapshot
		if err := json.Unmarshal(row[0], &s.URL); err != nil {
			return nil, relic.Errorf(relic.EINVALID, "snapshot %d: invalid url", i)
		}
		if err := json.Unmarshal(row[1], &s.Path); err != nil {
			return nil, relic.Errorf(relic.EINVALID, "snapshot %d: invalid path", i)
		}
		if len(row) > 2 {
			ts, err := parseTimestamp(row[2])
			if err != nil {
				return nil, relic.Errorf(relic.EINVALID, "snapshot %d: invalid timestamp %s", i, row[2])
			}
			s.Timestamp = ts
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadSnapshotFile reads a snapshot list from path.
func ReadSnapshotFile(path string) ([]relic.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, relic.Errorf(relic.EIO, "failed to open %s: %v", path, err)
	}
	defer f.Close()
	return ReadSnapshots(f)
}

// ReadCDX reads a web-archive CDX JSON listing: an array of rows whose first
// row may be a header naming the columns. The original and timestamp
// columns are used, and prefix is prepended to each original URL to build
// the capture URL. Without a header, rows are read as [original] or
// [timestamp, original] when the first field is all digits.
func ReadCDX(r io.Reader, prefix string) ([]relic.Snapshot, error) {
	var rows [][]string
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "invalid CDX listing: %v", err)
	}

	originalCol, tsCol := -1, -1
	if len(rows) > 0 {
		for i, name := range rows[0] {
			switch name {
			case "original":
				originalCol = i
			case "timestamp":
				tsCol = i
			}
		}
		if originalCol >= 0 {
			rows = rows[1:]
		}
	}

	out := make([]relic.Snapshot, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		original, ts := "", ""
		switch {
		case originalCol >= 0:
			if originalCol >= len(row) {
				return nil, relic.Errorf(relic.EINVALID, "CDX row %d: missing original", i)
			}
			original = row[originalCol]
			if tsCol >= 0 && tsCol < len(row) {
				ts = row[tsCol]
			}
		case len(row) >= 2 && isDigits(row[0]):
			ts, original = row[0], row[1]
		default:
			original = row[0]
		}

		var timestamp int64
		if ts != "" {
			n, err := strconv.ParseInt(ts, 10, 64)
			if err != nil {
				return nil, relic.Errorf(relic.EINVALID, "CDX row %d: invalid timestamp %q", i, ts)
			}
			timestamp = n
		}

		s, err := relic.NewSnapshot(prefix, original, timestamp)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteSnapshots writes snapshots as a JSON array of [url, path] tuples.
func WriteSnapshots(w io.Writer, snapshots []relic.Snapshot) error {
	rows := make([][2]string, len(snapshots))
	for i, s := range snapshots {
		rows[i] = [2]string{s.URL, s.Path}
	}
	return writeJSON(w, rows)
}

func parseTimestamp(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return relic.Errorf(relic.EIO, "failed to write JSON: %v", err)
	}
	return nil
}
