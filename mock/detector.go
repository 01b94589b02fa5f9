package mock

import "github.com/fwojciec/relic"

var _ relic.LayoutDetector = (*LayoutDetector)(nil)

// LayoutDetector is a mock implementation of relic.LayoutDetector.
type LayoutDetector struct {
	DetectFn func(html string) relic.Layout
}

func (d *LayoutDetector) Detect(html string) relic.Layout {
	return d.DetectFn(html)
}
