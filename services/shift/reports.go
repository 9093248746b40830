package shift

import (
	"fmt"
	"math"
	"sort"
	"time"

	"shiftwise/models"
	"shiftwise/schedule"
)

// WeekHours sums scheduled minutes per worker for the ISO week containing
// anchorDate. Open-ended shifts carry no length, so they are counted and
// surfaced rather than folded into the total.
func (s *DefaultShiftService) WeekHours(companyID, anchorDate string) (*models.WeekHoursReport, error) {
	anchor, err := time.Parse(schedule.DateLayout, anchorDate)
	if err != nil {
		return nil, ValidationError{Reason: fmt.Sprintf("date must be formatted %s", schedule.DateLayout)}
	}

	monday := schedule.MondayOf(anchor)
	sunday := monday.AddDate(0, 0, 6)

	shifts, err := s.Repo.GetByCompanyAndDateRange(
		companyID,
		monday.Format(schedule.DateLayout),
		sunday.Format(schedule.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*models.WorkerHours)
	for _, sh := range shifts {
		st, ok := stats[sh.WorkerID]
		if !ok {
			st = &models.WorkerHours{WorkerID: sh.WorkerID}
			stats[sh.WorkerID] = st
		}
		st.ShiftCount++
		if sh.Range.Open {
			st.OpenEndedCount++
		} else {
			st.Minutes += sh.DurationMinutes()
		}
	}

	workers, err := s.Workers.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}

	year, week := monday.ISOWeek()
	report := models.WeekHoursReport{
		ISOYear: year,
		ISOWeek: week,
		Monday:  monday.Format(schedule.DateLayout),
	}

	// Company order first, so rows follow employee numbers; anything left
	// belongs to workers since removed and trails sorted by ID.
	for _, w := range workers {
		st, ok := stats[w.ID]
		if !ok {
			continue
		}
		st.WorkerName = w.FullName()
		st.Function = w.Function
		st.Hours = math.Round(float64(st.Minutes)/60*100) / 100
		report.Workers = append(report.Workers, *st)
		delete(stats, w.ID)
	}

	var leftovers []*models.WorkerHours
	for _, st := range stats {
		leftovers = append(leftovers, st)
	}
	sort.Slice(leftovers, func(i, j int) bool { return leftovers[i].WorkerID < leftovers[j].WorkerID })
	for _, st := range leftovers {
		st.WorkerName = "former worker"
		st.Hours = math.Round(float64(st.Minutes)/60*100) / 100
		report.Workers = append(report.Workers, *st)
	}

	return &report, nil
}
