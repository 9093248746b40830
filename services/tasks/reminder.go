package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"shiftwise/config"
	"shiftwise/models"
	"shiftwise/schedule"
)

const TypeShiftReminder = "shift:reminder"

// NewShiftReminderTask builds the asynq task that fires a worker's shift
// reminder at the given time.
func NewShiftReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeShiftReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderFireTime computes when a shift's reminder should fire: the
// configured lead time before the shift starts, in the server's local
// zone. ok is false when the moment has already passed.
func ReminderFireTime(shift models.Shift, now time.Time) (time.Time, bool, error) {
	day, err := time.ParseInLocation(schedule.DateLayout, shift.Date, time.Local)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid shift date %q: %w", shift.Date, err)
	}

	lead := config.AppConfig.ReminderLeadMinutes
	start := day.Add(time.Duration(shift.Range.Start) * time.Minute)
	fireAt := start.Add(-time.Duration(lead) * time.Minute)

	return fireAt, fireAt.After(now), nil
}

// ShiftReminderPayload composes the push content for one shift.
func ShiftReminderPayload(shift models.Shift) models.ReminderPayload {
	return models.ReminderPayload{
		WorkerID: shift.WorkerID,
		ShiftID:  shift.ID,
		Date:     shift.Date,
		Start:    shift.Range.Start,
		Title:    "Upcoming shift",
		Body: fmt.Sprintf("Your shift starts at %s on %s.",
			shift.Range.StartLabel(), shift.Date),
	}
}
