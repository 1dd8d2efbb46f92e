// Package timeseries implements the append-only, bounded per-series
// point store. Timestamps are opaque strings — the store never parses
// or orders by them, it only preserves append order.
package timeseries

import "sync"

// Point is a single (timestamp, value) sample. Timestamp is expected
// to be ISO-8601 by convention, but the store treats it as an opaque
// string.
type Point struct {
	Timestamp string
	Value     float64
}

// Store holds one bounded, ordered point slice per series name.
// Series are created lazily on first append. Once a series reaches
// maxSize, each further append drops the oldest point (index 0)
// before appending the new one, preserving append order.
type Store struct {
	mu      sync.Mutex
	series  map[string][]Point
	maxSize int
}

// New constructs an empty store bounding every series to maxSize
// points.
func New(maxSize int) *Store {
	return &Store{
		series:  make(map[string][]Point),
		maxSize: maxSize,
	}
}

// AddTimePoint appends point to series, creating the series if this
// is its first point, and dropping the oldest point first if the
// series is already at maxSize.
func (s *Store) AddTimePoint(series string, point Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pts := s.series[series]
	if s.maxSize > 0 && len(pts) >= s.maxSize {
		pts = pts[1:]
	}
	s.series[series] = append(pts, point)
}

// GetTimeSeries returns a copy of series's points in append order.
// This has no equivalent in the distilled spec's serving path — it is
// the supplemented TSRANGE read (see SPEC_FULL.md §4.5), added because
// the store otherwise has no way to observe what was appended.
func (s *Store) GetTimeSeries(series string) ([]Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pts, ok := s.series[series]
	if !ok {
		return nil, false
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out, true
}
