package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	availabilityRepo "shiftwise/database/repository/availability"
	workerRepo "shiftwise/database/repository/worker"
	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/utils"
)

// AvailabilityService defines methods for declaring and reading worker
// availability.
type AvailabilityService interface {
	// SetDay creates or replaces the worker's record for one date.
	SetDay(req SetDayRequest) (*models.AvailabilityRecord, error)
	// ClearDay removes the record, returning the day to unset.
	ClearDay(workerID, date string) error
	// WeekFor builds the Monday-started week containing anchorDate for
	// one worker. Days without a record come back unset.
	WeekFor(workerID, anchorDate string) (*schedule.Week, error)
	// CompanyWeek builds the same week for every worker in a company.
	CompanyWeek(companyID, anchorDate string) ([]WorkerWeek, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo    availabilityRepo.AvailabilityRepository
	Workers workerRepo.WorkerRepository
}

// SetDayRequest carries one day's declared status.
type SetDayRequest struct {
	WorkerID  string `json:"-"`
	CompanyID string `json:"-"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// WorkerWeek pairs a worker with their availability week.
type WorkerWeek struct {
	WorkerID   string        `json:"workerId"`
	WorkerName string        `json:"workerName"`
	Function   string        `json:"function"`
	Week       schedule.Week `json:"week"`
}

// SetDay validates and upserts one availability record. The (workerId,
// date) unique index keeps racing writers from forking the day; last
// write wins.
func (s *DefaultAvailabilityService) SetDay(req SetDayRequest) (*models.AvailabilityRecord, error) {
	if _, err := time.Parse(schedule.DateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("date must be formatted %s", schedule.DateLayout)
	}

	status := schedule.DayStatus(req.Status)
	if status != schedule.StatusAvailable && status != schedule.StatusUnavailable {
		return nil, fmt.Errorf("status must be %q or %q; clear the day to unset it",
			schedule.StatusAvailable, schedule.StatusUnavailable)
	}

	rec := models.AvailabilityRecord{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Status:    status,
		Note:      req.Note,
	}

	// Keep the original identity and creation time on a re-declare.
	if existing, err := s.Repo.GetByWorkerAndDate(req.WorkerID, req.Date); err == nil && existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}

	if err := s.Repo.Upsert(&rec); err != nil {
		return nil, err
	}
	utils.GetLogger().Debug("Availability set",
		zap.String("workerID", req.WorkerID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)
	return &rec, nil
}

// ClearDay removes the worker's record for one date.
func (s *DefaultAvailabilityService) ClearDay(workerID, date string) error {
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return fmt.Errorf("date must be formatted %s", schedule.DateLayout)
	}
	return s.Repo.Delete(workerID, date)
}

// WeekFor builds one worker's availability week.
func (s *DefaultAvailabilityService) WeekFor(workerID, anchorDate string) (*schedule.Week, error) {
	anchor, err := time.Parse(schedule.DateLayout, anchorDate)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted %s", schedule.DateLayout)
	}

	monday := schedule.MondayOf(anchor)
	sunday := monday.AddDate(0, 0, 6)

	records, err := s.Repo.GetByWorkerAndDateRange(
		workerID,
		monday.Format(schedule.DateLayout),
		sunday.Format(schedule.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	week := schedule.BuildWeek(anchor, dayRecords(records))
	return &week, nil
}

// CompanyWeek builds the week for every worker, roster order.
func (s *DefaultAvailabilityService) CompanyWeek(companyID, anchorDate string) ([]WorkerWeek, error) {
	anchor, err := time.Parse(schedule.DateLayout, anchorDate)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted %s", schedule.DateLayout)
	}

	workers, err := s.Workers.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}

	monday := schedule.MondayOf(anchor)
	sunday := monday.AddDate(0, 0, 6)

	records, err := s.Repo.GetByCompanyAndDateRange(
		companyID,
		monday.Format(schedule.DateLayout),
		sunday.Format(schedule.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	byWorker := make(map[string][]models.AvailabilityRecord)
	for _, rec := range records {
		byWorker[rec.WorkerID] = append(byWorker[rec.WorkerID], rec)
	}

	weeks := make([]WorkerWeek, 0, len(workers))
	for _, w := range workers {
		weeks = append(weeks, WorkerWeek{
			WorkerID:   w.ID,
			WorkerName: w.FullName(),
			Function:   w.Function,
			Week:       schedule.BuildWeek(anchor, dayRecords(byWorker[w.ID])),
		})
	}
	return weeks, nil
}

func dayRecords(records []models.AvailabilityRecord) map[string]schedule.DayRecord {
	out := make(map[string]schedule.DayRecord, len(records))
	for _, rec := range records {
		out[rec.Date] = rec.DayRecord()
	}
	return out
}
