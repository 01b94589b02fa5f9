package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/relic"
)

var _ relic.LayoutDetector = (*Detector)(nil)

// Detector identifies the capture layout of a document by probing for
// anchors that only one layout carries.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified layout.
// Returns LayoutUnknown if the layout cannot be determined.
func (d *Detector) Detect(html string) relic.Layout {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return relic.LayoutUnknown
	}

	// Microdata survives in the live page source, including search caches.
	if hasSelector(doc, liveMainSelector) {
		return relic.LayoutLive
	}

	// archive.today strips classes but keeps named anchors and text.
	if postAnchors(doc).Length() > 0 && commentsPattern.MatchString(doc.Text()) {
		return relic.LayoutArchive
	}

	return relic.LayoutUnknown
}
