package shift

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/utils"
)

// buildDayView walks one day's shifts through the lane allocator and the
// geometry mapping. Every calendar view funnels through here, so day,
// week and month always agree on how a shift is placed.
func (s *DefaultShiftService) buildDayView(date string, shifts []models.Shift) models.DayView {
	day, _ := time.Parse(schedule.DateLayout, date)

	placements := schedule.AssignLanes(intervalsOf(shifts), s.Window.End)

	blocks := make([]models.ShiftBlock, 0, len(shifts))
	for _, sh := range shifts {
		p := placements[sh.ID]
		blocks = append(blocks, models.ShiftBlock{
			Shift:      sh,
			Placement:  p,
			Geometry:   s.Window.BlockFor(sh.Interval(), p),
			StartLabel: sh.Range.StartLabel(),
			EndLabel:   sh.Range.EndLabel(),
		})
	}

	return models.DayView{
		Date:    date,
		Weekday: day.Weekday().String(),
		Slots:   s.Window.Slots(),
		Blocks:  blocks,
	}
}

// DayView renders one company day, serving from the cache when a write
// has not invalidated it.
func (s *DefaultShiftService) DayView(companyID, date string) (*models.DayView, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	ctx := context.Background()
	var cached models.DayView
	if utils.GetDayView(ctx, companyID, date, &cached) {
		return &cached, nil
	}

	shifts, err := s.Repo.GetByCompanyAndDate(companyID, date)
	if err != nil {
		return nil, err
	}
	view := s.buildDayView(date, shifts)

	if err := utils.SaveDayView(ctx, companyID, date, view); err != nil {
		utils.GetLogger().Warn("Failed to cache day view", zap.Error(err))
	}
	return &view, nil
}

// WeekView renders the Monday-started week containing anchorDate.
func (s *DefaultShiftService) WeekView(companyID, anchorDate string) (*models.WeekView, error) {
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

	byDate := make(map[string][]models.Shift)
	for _, sh := range shifts {
		byDate[sh.Date] = append(byDate[sh.Date], sh)
	}

	year, week := monday.ISOWeek()
	view := models.WeekView{
		ISOYear: year,
		ISOWeek: week,
		Monday:  monday.Format(schedule.DateLayout),
	}
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format(schedule.DateLayout)
		view.Days[i] = s.buildDayView(date, byDate[date])
	}
	return &view, nil
}

// MonthView condenses a calendar month into per-day counts and the
// widest cluster each day reaches. It runs the same allocator as the
// day view rather than approximating.
func (s *DefaultShiftService) MonthView(companyID string, year, month int) (*models.MonthView, error) {
	if month < 1 || month > 12 {
		return nil, ValidationError{Reason: fmt.Sprintf("month %d out of range", month)}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	shifts, err := s.Repo.GetByCompanyAndDateRange(
		companyID,
		first.Format(schedule.DateLayout),
		last.Format(schedule.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]models.Shift)
	for _, sh := range shifts {
		byDate[sh.Date] = append(byDate[sh.Date], sh)
	}

	days := make([]models.MonthDay, 0, last.Day())
	for d := 1; d <= last.Day(); d++ {
		date := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Format(schedule.DateLayout)
		dayShifts := byDate[date]

		peak := 0
		if len(dayShifts) > 0 {
			for _, p := range schedule.AssignLanes(intervalsOf(dayShifts), s.Window.End) {
				if p.TotalLanes > peak {
					peak = p.TotalLanes
				}
			}
		}

		days = append(days, models.MonthDay{
			Date:       date,
			ShiftCount: len(dayShifts),
			PeakLanes:  peak,
		})
	}

	return &models.MonthView{Year: year, Month: month, Days: days}, nil
}
