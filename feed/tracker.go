package feed

import "math"

// Tracker maps a continuous scroll offset onto a discrete card index for a
// full-screen vertical feed. It remembers the last reported index so that
// repeated scroll ticks over the same card do not produce redundant updates.
//
// A Tracker starts at index 0, which is where every feed begins.
type Tracker struct {
	index    int
	viewport float64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Index returns the currently tracked index.
func (t *Tracker) Index() int {
	return t.index
}

// OnScroll converts a scroll offset into the nearest card index, clamped to
// [0, itemCount-1]. It returns the index and true only when the index differs
// from the previously reported one; otherwise it reports nothing.
//
// A non-positive viewport or an empty feed cannot produce a candidate, so
// both are ignored.
func (t *Tracker) OnScroll(offset, viewport float64, itemCount int) (int, bool) {
	if itemCount <= 0 || viewport <= 0 {
		return 0, false
	}
	t.viewport = viewport

	candidate := int(math.Round(offset / viewport))
	if candidate < 0 {
		candidate = 0
	}
	if candidate > itemCount-1 {
		candidate = itemCount - 1
	}

	if candidate == t.index {
		return 0, false
	}
	t.index = candidate
	return candidate, true
}

// GoTo performs a programmatic advance to index. Only a single forward step
// from the tracked index is allowed; anything else is a no-op. On success it
// returns the scroll offset the presentation layer should animate to, based
// on the last observed viewport size.
func (t *Tracker) GoTo(index, itemCount int) (float64, bool) {
	if itemCount <= 0 || index < 0 || index > itemCount-1 {
		return 0, false
	}
	if index != t.index+1 {
		return 0, false
	}
	t.index = index
	return float64(index) * t.viewport, true
}
