package goquery

import (
	"sort"

	"github.com/fwojciec/relic"
)

var _ relic.Extractor = (*Registry)(nil)

// Registry manages layout-specific extractors. It uses a LayoutDetector to
// identify the layout of each document and delegates to the extractor
// registered for it.
type Registry struct {
	detector   relic.LayoutDetector
	extractors map[relic.Layout]relic.Extractor
}

// NewRegistry creates a new Registry with the given detector.
func NewRegistry(detector relic.LayoutDetector) *Registry {
	return &Registry{
		detector:   detector,
		extractors: make(map[relic.Layout]relic.Extractor),
	}
}

// NewDefaultRegistry creates a Registry with rules for every known layout.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	r.Register(relic.LayoutLive, NewLiveExtractor())
	r.Register(relic.LayoutArchive, NewArchiveExtractor())
	return r
}

// Register adds an extractor for a layout.
// If an extractor is already registered for the layout, it is replaced.
func (r *Registry) Register(layout relic.Layout, e relic.Extractor) {
	r.extractors[layout] = e
}

// Get returns the extractor for a layout, or nil if none is registered.
func (r *Registry) Get(layout relic.Layout) relic.Extractor {
	return r.extractors[layout]
}

// List returns all registered layouts in sorted order.
func (r *Registry) List() []relic.Layout {
	layouts := make([]relic.Layout, 0, len(r.extractors))
	for l := range r.extractors {
		layouts = append(layouts, l)
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i] < layouts[j] })
	return layouts
}

// Extract implements relic.Extractor.
func (r *Registry) Extract(html string, variant relic.Variant) (*relic.RawPost, error) {
	e, err := r.forHTML(html)
	if err != nil {
		return nil, err
	}
	return e.Extract(html, variant)
}

// ExtractThread implements relic.Extractor.
func (r *Registry) ExtractThread(html string, threadID int64) (*relic.RawThread, error) {
	e, err := r.forHTML(html)
	if err != nil {
		return nil, err
	}
	return e.ExtractThread(html, threadID)
}

func (r *Registry) forHTML(html string) (relic.Extractor, error) {
	layout := r.detector.Detect(html)
	e, ok := r.extractors[layout]
	if !ok {
		return nil, relic.Errorf(relic.EEXTRACT, "unrecognized capture layout: %s", layout)
	}
	return e, nil
}
