package models

import (
	"time"

	"shiftwise/schedule"
)

// Shift is one worker's scheduled interval on a single date. Shifts never
// span dates; late work past midnight is modelled as an open-ended range.
type Shift struct {
	ID        string    `bson:"id" json:"id"`
	CompanyID string    `bson:"companyId" json:"companyId"`
	WorkerID  string    `bson:"workerId" json:"workerId"`
	Date      string    `bson:"date" json:"date"` // "2006-01-02"
	Range     TimeRange `bson:"range" json:"range"`
	Function  string    `bson:"function,omitempty" json:"function,omitempty"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval projects the shift down to what the conflict detector and lane
// allocator operate on.
func (s Shift) Interval() schedule.Interval {
	if s.Range.Open {
		return schedule.OpenEnded(s.ID, s.Range.Start)
	}
	return schedule.Bounded(s.ID, s.Range.Start, s.Range.End)
}

// DurationMinutes is the worked length of a bounded shift. Open-ended
// shifts report zero; hour reports count them separately instead of
// guessing an end.
func (s Shift) DurationMinutes() int {
	if s.Range.Open {
		return 0
	}
	return s.Range.End - s.Range.Start
}
