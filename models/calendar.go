package models

import "shiftwise/schedule"

// ShiftBlock is a shift decorated with everything the calendar needs to
// draw it: its lane placement within the day and its pixel geometry
// inside the rendering window.
type ShiftBlock struct {
	Shift      Shift                  `json:"shift"`
	Placement  schedule.LanePlacement `json:"placement"`
	Geometry   schedule.Block         `json:"geometry"`
	StartLabel string                 `json:"startLabel"`
	EndLabel   string                 `json:"endLabel"`
}

// DayView is one rendered calendar column.
type DayView struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	Slots   []string     `json:"slots"`
	Blocks  []ShiftBlock `json:"blocks"`
}

// WeekView is seven day columns, Monday first.
type WeekView struct {
	ISOYear int        `json:"isoYear"`
	ISOWeek int        `json:"isoWeek"`
	Monday  string     `json:"monday"`
	Days    [7]DayView `json:"days"`
}

// MonthDay is the condensed per-day cell of a month overview: how many
// shifts the day holds and how wide its busiest cluster gets.
type MonthDay struct {
	Date       string `json:"date"`
	ShiftCount int    `json:"shiftCount"`
	PeakLanes  int    `json:"peakLanes"`
}

// MonthView covers a calendar month.
type MonthView struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []MonthDay `json:"days"`
}

// WorkerHours sums one worker's scheduled minutes for a reporting period.
// Open-ended shifts cannot be summed; they are counted instead so the
// caller can flag the total as incomplete.
type WorkerHours struct {
	WorkerID       string  `json:"workerId"`
	WorkerName     string  `json:"workerName"`
	Function       string  `json:"function"`
	ShiftCount     int     `json:"shiftCount"`
	Minutes        int     `json:"minutes"`
	Hours          float64 `json:"hours"`
	OpenEndedCount int     `json:"openEndedCount"`
}

// WeekHoursReport is the per-worker hour summary for one ISO week.
type WeekHoursReport struct {
	ISOYear int           `json:"isoYear"`
	ISOWeek int           `json:"isoWeek"`
	Monday  string        `json:"monday"`
	Workers []WorkerHours `json:"workers"`
}
