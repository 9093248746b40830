// Package schedule holds the pure roster computations: shift conflict
// detection, calendar lane layout, block geometry, and availability weeks.
// Nothing in here touches storage or the network.
package schedule

import "math"

// Minute bounds of a single roster date.
const (
	DayStart = 0
	DayEnd   = 24 * 60
)

// openEndSentinel stands in for the missing end of an open-ended interval
// during conflict checks. It sorts after any representable minute of a day.
const openEndSentinel = math.MaxInt32

// Interval is one worker's shift range on a single date, projected down to
// what the conflict detector and lane allocator need. Build values through
// Bounded or OpenEnded so the Open flag and End stay consistent.
type Interval struct {
	ID    string
	Start int // minutes from midnight
	End   int // exclusive; ignored when Open
	Open  bool
}

// Bounded returns the closed-start, open-end range [start, end).
func Bounded(id string, start, end int) Interval {
	return Interval{ID: id, Start: start, End: end}
}

// OpenEnded returns an interval with a start but no declared end, e.g. a
// closing shift that runs until the restaurant shuts.
func OpenEnded(id string, start int) Interval {
	return Interval{ID: id, Start: start, Open: true}
}

// effectiveEnd is the end used for conflict comparisons: the declared end,
// or the sentinel when the interval is open-ended.
func (iv Interval) effectiveEnd() int {
	if iv.Open {
		return openEndSentinel
	}
	return iv.End
}

// renderEnd is the end used for lane occupancy and geometry. Open-ended
// intervals terminate at the rendering window's closing boundary so the
// drawn block ends visibly instead of running off the grid.
func (iv Interval) renderEnd(windowEnd int) int {
	if iv.Open {
		return windowEnd
	}
	return iv.End
}

// Overlaps reports whether two half-open ranges intersect. Adjacent ranges,
// one ending exactly when the other starts, do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.effectiveEnd() && other.Start < iv.effectiveEnd()
}
