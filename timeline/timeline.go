// Package timeline reconstructs post creation dates from the dates of
// neighbouring posts.
//
// Post identifiers are assigned in creation order, so a post with no
// recorded date was created between the posts whose identifiers surround
// it. The Index estimates its date as the midpoint of those two dates.
package timeline

import (
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/relic"
)

// NeighborPolicy selects the posts an unknown date is interpolated from.
type NeighborPolicy int

const (
	// OffsetNeighbors pairs the closest lower identifier with the second
	// closest higher one. Corpora produced by earlier tooling were
	// reconstructed this way, so it is the default.
	OffsetNeighbors NeighborPolicy = iota

	// AdjacentNeighbors pairs the closest lower and higher identifiers.
	AdjacentNeighbors
)

// String returns the policy name used in configuration.
func (p NeighborPolicy) String() string {
	if p == AdjacentNeighbors {
		return "adjacent"
	}
	return "offset"
}

// ParseNeighborPolicy parses a policy name.
func ParseNeighborPolicy(s string) (NeighborPolicy, error) {
	switch s {
	case "", "offset":
		return OffsetNeighbors, nil
	case "adjacent":
		return AdjacentNeighbors, nil
	}
	return 0, relic.Errorf(relic.EINVALID, "unknown neighbor policy %q", s)
}

// Compile-time interface verification.
var _ relic.Timeline = (*Index)(nil)

// Index is a sorted set of known post dates. It is safe for concurrent use:
// lookups share a read lock and Add is the only mutation.
type Index struct {
	mu     sync.RWMutex
	ids    []int64 // sorted ascending
	dates  map[int64]time.Time
	policy NeighborPolicy
}

// Option configures an Index.
type Option func(*Index)

// WithPolicy sets the neighbor policy.
func WithPolicy(p NeighborPolicy) Option {
	return func(idx *Index) {
		idx.policy = p
	}
}

// NewIndex creates an empty Index.
func NewIndex(opts ...Option) *Index {
	idx := &Index{dates: make(map[int64]time.Time)}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Load creates an Index holding the given dates.
func Load(dates map[int64]time.Time, opts ...Option) *Index {
	idx := NewIndex(opts...)
	idx.ids = make([]int64, 0, len(dates))
	for id, t := range dates {
		idx.ids = append(idx.ids, id)
		idx.dates[id] = t.UTC()
	}
	sort.Slice(idx.ids, func(i, j int) bool { return idx.ids[i] < idx.ids[j] })
	return idx
}

// Add records the date of a post. An existing date is kept.
func (idx *Index) Add(id int64, t time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.insert(id, t.UTC())
}

// Lookup returns the recorded date of a post.
func (idx *Index) Lookup(id int64) (time.Time, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	t, ok := idx.dates[id]
	return t, ok
}

// Len returns the number of recorded dates.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Resolve returns the date of a post. A recorded date is returned as is.
// Otherwise the date is interpolated from neighbouring posts and recorded,
// so later lookups in the run see it. Returns ERECONSTRUCT when a neighbour
// is missing.
func (idx *Index) Resolve(id int64) (time.Time, error) {
	idx.mu.RLock()
	t, ok := idx.dates[id]
	if !ok {
		var err error
		t, err = idx.interpolate(id)
		if err != nil {
			idx.mu.RUnlock()
			return time.Time{}, err
		}
	}
	idx.mu.RUnlock()

	if ok {
		return t, nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	// Another goroutine may have recorded the post since the read.
	return idx.insert(id, t), nil
}

// interpolate must be called with the lock held.
func (idx *Index) interpolate(id int64) (time.Time, error) {
	rank := sort.Search(len(idx.ids), func(i int) bool { return idx.ids[i] >= id })

	lower, upper := rank-1, rank
	if idx.policy == OffsetNeighbors {
		upper = rank + 1
	}
	if lower < 0 || upper >= len(idx.ids) {
		return time.Time{}, relic.Errorf(relic.ERECONSTRUCT,
			"cannot reconstruct date of post %d: %d known dates, need neighbours at ranks %d and %d",
			id, len(idx.ids), lower, upper)
	}

	return Midpoint(idx.dates[idx.ids[lower]], idx.dates[idx.ids[upper]]), nil
}

// insert must be called with the write lock held. It returns the date
// recorded for id.
func (idx *Index) insert(id int64, t time.Time) time.Time {
	if existing, ok := idx.dates[id]; ok {
		return existing
	}
	rank := sort.Search(len(idx.ids), func(i int) bool { return idx.ids[i] >= id })
	idx.ids = append(idx.ids, 0)
	copy(idx.ids[rank+1:], idx.ids[rank:])
	idx.ids[rank] = id
	idx.dates[id] = t
	return t
}

// Midpoint returns the mean of two times at millisecond precision, in UTC.
func Midpoint(a, b time.Time) time.Time {
	return time.UnixMilli((a.UnixMilli() + b.UnixMilli()) / 2).UTC()
}
