package relic

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Snapshot is a record of one web-archive capture of a corpus page.
type Snapshot struct {
	// URL is where the capture can be retrieved.
	URL string

	// Path is the corpus path the capture belongs to.
	Path string

	// Timestamp orders captures of the same path. Wayback timestamps
	// (YYYYMMDDhhmmss) compare correctly as integers. Zero when unknown.
	Timestamp int64
}

// NewSnapshot builds a Snapshot for an original URL listed by a web-archive
// index. prefix is prepended to the original URL to form the capture URL.
func NewSnapshot(prefix, original string, timestamp int64) (Snapshot, error) {
	p, err := SnapshotPath(original)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		URL:       prefix + original,
		Path:      p,
		Timestamp: timestamp,
	}, nil
}

// SnapshotPath maps an original page URL to the path its capture is stored
// under. Directory URLs map to their index.html, and so do extensionless
// paths. The result is percent-decoded.
func SnapshotPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	if path.Ext(strings.TrimLeft(path.Base(p), ".")) == "" {
		p += "/index.html"
	}

	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return p, nil
}

// DedupeSnapshots keeps one snapshot per path: the one with the greatest
// timestamp. On equal timestamps the record seen first wins.
func DedupeSnapshots(records []Snapshot) map[string]Snapshot {
	m := make(map[string]Snapshot, len(records))
	for _, r := range records {
		cur, ok := m[r.Path]
		if !ok || r.Timestamp > cur.Timestamp {
			m[r.Path] = r
		}
	}
	return m
}

// SortSnapshots returns the snapshots ordered by path.
func SortSnapshots(m map[string]Snapshot) []Snapshot {
	out := make([]Snapshot, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
