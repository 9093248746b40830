package shift

import (
	"fmt"

	"shiftwise/models"
)

// ConflictError reports that a candidate shift overlaps one or more of
// the worker's existing shifts on that date. The write was refused.
type ConflictError struct {
	WorkerID  string
	Date      string
	Conflicts []models.Shift
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("worker %s already has %d overlapping shift(s) on %s",
		e.WorkerID, len(e.Conflicts), e.Date)
}

// DayBusyError reports that another writer holds the worker-day lock.
// The caller should retry shortly.
type DayBusyError struct {
	WorkerID string
	Date     string
}

func (e DayBusyError) Error() string {
	return fmt.Sprintf("another change to worker %s on %s is in progress", e.WorkerID, e.Date)
}

// ValidationError reports input rejected before any storage was touched.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports a missing shift.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("shift %s not found", e.ID)
}
