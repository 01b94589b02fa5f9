package fs

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/relic"
)

// SearchResult is one entry of a custom-search API response.
type SearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	CacheURL string `json:"cacheUrl"`
}

// ParseSearchResults decodes a search API response. The response may be
// wrapped in a JSONP callback, optionally preceded by a comment line.
func ParseSearchResults(data []byte) ([]SearchResult, error) {
	body := bytes.TrimSpace(data)
	if len(body) == 0 || body[0] != '{' {
		start := bytes.IndexByte(body, '{')
		end := bytes.LastIndexByte(body, '}')
		if start < 0 || end < start {
			return nil, relic.Errorf(relic.EINVALID, "no JSON object in search response")
		}
		body = body[start : end+1]
	}

	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "invalid search response: %v", err)
	}
	return resp.Results, nil
}

// ReadSearchResults reads every file in dir whose name starts with prefix
// and returns the concatenated results in file name order.
func ReadSearchResults(dir, prefix string) ([]SearchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, relic.Errorf(relic.EIO, "failed to read %s: %v", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var results []SearchResult
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, relic.Errorf(relic.EIO, "failed to read %s: %v", name, err)
		}
		rs, err := ParseSearchResults(data)
		if err != nil {
			return nil, relic.Errorf(relic.EINVALID, "%s: %s", name, relic.ErrorMessage(err))
		}
		results = append(results, rs...)
	}
	return results, nil
}

// WriteCacheRecords writes records as an indented JSON array.
func WriteCacheRecords(w io.Writer, records []*relic.CacheRecord) error {
	if records == nil {
		records = []*relic.CacheRecord{}
	}
	return writeJSON(w, records)
}
