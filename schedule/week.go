package schedule

import "time"

// DateLayout is the wire format for roster dates.
const DateLayout = "2006-01-02"

// DayStatus classifies one date of an availability week.
type DayStatus string

const (
	StatusAvailable   DayStatus = "available"
	StatusUnavailable DayStatus = "unavailable"
	// StatusUnset marks a day the worker has said nothing about.
	StatusUnset DayStatus = "unset"
)

// DayRecord is a stored availability entry, keyed externally by its date.
type DayRecord struct {
	Status DayStatus
	Note   string
}

// WeekDay is one column of an availability week.
type WeekDay struct {
	Date    string    `json:"date"`
	Weekday string    `json:"weekday"`
	Status  DayStatus `json:"status"`
	Note    string    `json:"note,omitempty"`
}

// Week is a Monday-start 7-day availability window with its ISO numbering.
type Week struct {
	ISOYear int        `json:"isoYear"`
	ISOWeek int        `json:"isoWeek"`
	Monday  string     `json:"monday"`
	Days    [7]WeekDay `json:"days"`
}

// MondayOf returns the Monday that begins the ISO week containing t.
func MondayOf(t time.Time) time.Time {
	// time.Weekday counts Sunday as 0; ISO weeks start on Monday.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// ISOWeekOf reports the ISO-8601 year and week holding the given date.
// Early-January dates may land in the previous ISO year's final week and
// late-December dates in week 1 of the next, matching official numbering.
func ISOWeekOf(date string) (year, week int, err error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, err
	}
	year, week = t.ISOWeek()
	return year, week, nil
}

// BuildWeek assembles the Monday-start week around anchor from a sparse set
// of per-day records. Days without a record default to StatusUnset so the
// view always carries exactly seven columns.
func BuildWeek(anchor time.Time, records map[string]DayRecord) Week {
	monday := MondayOf(anchor)

	var wk Week
	wk.Monday = monday.Format(DateLayout)
	wk.ISOYear, wk.ISOWeek = monday.ISOWeek()

	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		date := d.Format(DateLayout)
		day := WeekDay{
			Date:    date,
			Weekday: d.Weekday().String(),
			Status:  StatusUnset,
		}
		if rec, ok := records[date]; ok {
			day.Status = rec.Status
			day.Note = rec.Note
		}
		wk.Days[i] = day
	}
	return wk
}
