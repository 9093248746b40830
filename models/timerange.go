package models

import "shiftwise/schedule"

// TimeRange is a shift's span within its date, in minutes from midnight.
// Open marks a range with no declared end, e.g. a closing shift that runs
// until the restaurant shuts; End is ignored while Open is set.
type TimeRange struct {
	Start int  `bson:"start" json:"start"`
	End   int  `bson:"end,omitempty" json:"end,omitempty"`
	Open  bool `bson:"open,omitempty" json:"open,omitempty"`
}

// BoundedRange builds a closed range [start, end).
func BoundedRange(start, end int) TimeRange {
	return TimeRange{Start: start, End: end}
}

// OpenRange builds a range with a start and no declared end.
func OpenRange(start int) TimeRange {
	return TimeRange{Start: start, Open: true}
}

// Valid reports whether the range fits within one date, with a strictly
// positive length when bounded. Zero-length shifts are rejected here, before
// any conflict check runs.
func (r TimeRange) Valid() bool {
	if r.Start < schedule.DayStart || r.Start >= schedule.DayEnd {
		return false
	}
	if r.Open {
		return true
	}
	return r.End > r.Start && r.End <= schedule.DayEnd
}

// StartLabel renders the start as "HH:MM".
func (r TimeRange) StartLabel() string {
	return schedule.FormatClock(r.Start)
}

// EndLabel renders the end as "HH:MM", or "open" when no end is declared.
func (r TimeRange) EndLabel() string {
	if r.Open {
		return "open"
	}
	return schedule.FormatClock(r.End)
}
