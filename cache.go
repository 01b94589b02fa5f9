package relic

import (
	"regexp"
	"sort"
	"strconv"
)

// CacheRecord locates the search-engine cached copy of a thread page.
type CacheRecord struct {
	ID      int64  `json:"postID,string"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	CacheID string `json:"cacheID"`
}

var (
	postIDPattern  = regexp.MustCompile(`/p/(\d+)`)
	cacheIDPattern = regexp.MustCompile(`q=cache:(.+?):`)
)

// ParseCacheRecord builds a CacheRecord from a search result. link is the
// original page URL and cacheURL the search engine's cache link.
func ParseCacheRecord(title, link, cacheURL string) (*CacheRecord, error) {
	m := postIDPattern.FindStringSubmatch(link)
	if m == nil {
		return nil, Errorf(EINVALID, "no post ID in %q", link)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid post ID in %q", link)
	}

	c := cacheIDPattern.FindStringSubmatch(cacheURL)
	if c == nil {
		return nil, Errorf(EINVALID, "no cache ID in %q", cacheURL)
	}

	return &CacheRecord{
		ID:      id,
		Title:   title,
		Link:    link,
		CacheID: c[1],
	}, nil
}

// UniqueCacheRecords orders records by post ID and keeps the first record
// for each ID.
func UniqueCacheRecords(records []*CacheRecord) []*CacheRecord {
	sorted := make([]*CacheRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out := make([]*CacheRecord, 0, len(sorted))
	for _, r := range sorted {
		if len(out) > 0 && out[len(out)-1].ID == r.ID {
			continue
		}
		out = append(out, r)
	}
	return out
}
