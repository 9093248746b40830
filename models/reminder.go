package models

// ReminderPayload is the asynq task body for a scheduled shift reminder.
// Start echoes the shift's start minute at enqueue time so the worker can
// drop reminders made stale by a later edit.
type ReminderPayload struct {
	WorkerID string `json:"workerId"`
	ShiftID  string `json:"shiftId"`
	Date     string `json:"date"`
	Start    int    `json:"start"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}
