package mock

import "github.com/fwojciec/relic"

var _ relic.Converter = (*Converter)(nil)

// Converter is a mock implementation of relic.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
