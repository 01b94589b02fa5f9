package mock

import "github.com/fwojciec/relic"

var _ relic.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of relic.Extractor.
type Extractor struct {
	ExtractFn       func(html string, variant relic.Variant) (*relic.RawPost, error)
	ExtractThreadFn func(html string, threadID int64) (*relic.RawThread, error)
}

func (e *Extractor) Extract(html string, variant relic.Variant) (*relic.RawPost, error) {
	return e.ExtractFn(html, variant)
}

func (e *Extractor) ExtractThread(html string, threadID int64) (*relic.RawThread, error) {
	return e.ExtractThreadFn(html, threadID)
}
