package mock

import (
	"time"

	"github.com/fwojciec/relic"
)

var _ relic.Timeline = (*Timeline)(nil)

// Timeline is a mock implementation of relic.Timeline.
type Timeline struct {
	AddFn     func(id int64, t time.Time)
	ResolveFn func(id int64) (time.Time, error)
}

func (tl *Timeline) Add(id int64, t time.Time) {
	tl.AddFn(id, t)
}

func (tl *Timeline) Resolve(id int64) (time.Time, error) {
	return tl.ResolveFn(id)
}
