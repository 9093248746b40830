package models

import (
	"time"

	"shiftwise/schedule"
)

// AvailabilityRecord is one worker's declared status for one calendar day.
// At most one record exists per (workerId, date); days without a record
// render as unset.
type AvailabilityRecord struct {
	ID        string             `bson:"id" json:"id"`
	CompanyID string             `bson:"companyId" json:"companyId"`
	WorkerID  string             `bson:"workerId" json:"workerId"`
	Date      string             `bson:"date" json:"date"`
	Status    schedule.DayStatus `bson:"status" json:"status"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DayRecord projects the record into the pure week-builder input.
func (a AvailabilityRecord) DayRecord() schedule.DayRecord {
	return schedule.DayRecord{Status: a.Status, Note: a.Note}
}
