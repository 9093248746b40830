package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/services/tasks"
	"shiftwise/utils"
)

func validateDate(date string) error {
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return ValidationError{Reason: fmt.Sprintf("date must be formatted %s", schedule.DateLayout)}
	}
	return nil
}

func rangeFrom(start, end int, open bool) (models.TimeRange, error) {
	var tr models.TimeRange
	if open {
		tr = models.OpenRange(start)
	} else {
		tr = models.BoundedRange(start, end)
	}
	if !tr.Valid() {
		return tr, ValidationError{Reason: fmt.Sprintf(
			"invalid time range %s - %s: start must lie inside the day and a bounded end must come after it",
			tr.StartLabel(), tr.EndLabel())}
	}
	return tr, nil
}

func intervalsOf(shifts []models.Shift) []schedule.Interval {
	intervals := make([]schedule.Interval, 0, len(shifts))
	for _, s := range shifts {
		intervals = append(intervals, s.Interval())
	}
	return intervals
}

// conflicting lists the existing shifts a candidate overlaps, honoring
// the same self-exclusion the gate applies.
func conflicting(existing []models.Shift, candidate schedule.Interval) []models.Shift {
	var out []models.Shift
	for _, s := range existing {
		if candidate.ID != "" && s.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(s.Interval()) {
			out = append(out, s)
		}
	}
	return out
}

// resolveWorker loads and vets the worker a shift is being written for.
func (s *DefaultShiftService) resolveWorker(workerID, companyID string) (*models.Worker, error) {
	worker, err := s.Workers.GetByID(workerID)
	if err != nil {
		return nil, ValidationError{Reason: fmt.Sprintf("worker %s not found", workerID)}
	}
	if worker.CompanyID != companyID {
		return nil, ValidationError{Reason: fmt.Sprintf("worker %s is not part of this company", workerID)}
	}
	if !worker.Active || !worker.Approved {
		return nil, ValidationError{Reason: fmt.Sprintf("worker %s cannot be scheduled", workerID)}
	}
	return worker, nil
}

// CreateShift writes a new shift after the overlap gate passes.
func (s *DefaultShiftService) CreateShift(req CreateShiftRequest) (*models.Shift, error) {
	logger := utils.GetLogger()

	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	tr, err := rangeFrom(req.Start, req.End, req.Open)
	if err != nil {
		return nil, err
	}
	worker, err := s.resolveWorker(req.WorkerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	function := req.Function
	if function == "" {
		function = worker.Function
	}
	if !models.ValidFunction(function) {
		return nil, ValidationError{Reason: fmt.Sprintf("unknown function %q", function)}
	}

	locked, err := s.Repo.AcquireDayLock(req.WorkerID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to lock worker day: %w", err)
	}
	if !locked {
		return nil, DayBusyError{WorkerID: req.WorkerID, Date: req.Date}
	}
	defer func() {
		if err := s.Repo.ReleaseDayLock(req.WorkerID, req.Date); err != nil {
			logger.Error("Failed to release day lock", zap.Error(err))
		}
	}()

	existing, err := s.Repo.GetByWorkerAndDate(req.WorkerID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing shifts: %w", err)
	}

	newShift := models.Shift{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Range:     tr,
		Function:  function,
		Note:      req.Note,
		CreatedBy: req.CreatedBy,
	}

	candidate := newShift.Interval()
	if schedule.HasConflict(intervalsOf(existing), candidate) {
		return nil, ConflictError{
			WorkerID:  req.WorkerID,
			Date:      req.Date,
			Conflicts: conflicting(existing, candidate),
		}
	}

	if err := s.Repo.Create(&newShift); err != nil {
		return nil, err
	}
	logger.Info("Shift created",
		zap.String("shiftID", newShift.ID),
		zap.String("workerID", newShift.WorkerID),
		zap.String("date", newShift.Date),
	)

	s.warnIfUnavailable(newShift)
	s.afterWrite(newShift)

	if err := s.Notif.NotifyShiftAssigned(context.Background(), newShift); err != nil {
		logger.Warn("Failed to push shift assignment", zap.Error(err))
	}

	return &newShift, nil
}

// UpdateShift rewrites an existing shift. The stored version excludes
// itself from the overlap gate, so shrinking or nudging a shift inside
// its own old footprint always passes.
func (s *DefaultShiftService) UpdateShift(req UpdateShiftRequest) (*models.Shift, error) {
	logger := utils.GetLogger()

	current, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.CompanyID != req.CompanyID {
		return nil, NotFoundError{ID: req.ID}
	}

	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	tr, err := rangeFrom(req.Start, req.End, req.Open)
	if err != nil {
		return nil, err
	}

	workerID := req.WorkerID
	if workerID == "" {
		workerID = current.WorkerID
	}
	worker, err := s.resolveWorker(workerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	function := req.Function
	if function == "" {
		function = worker.Function
	}
	if !models.ValidFunction(function) {
		return nil, ValidationError{Reason: fmt.Sprintf("unknown function %q", function)}
	}

	locked, err := s.Repo.AcquireDayLock(workerID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to lock worker day: %w", err)
	}
	if !locked {
		return nil, DayBusyError{WorkerID: workerID, Date: req.Date}
	}
	defer func() {
		if err := s.Repo.ReleaseDayLock(workerID, req.Date); err != nil {
			logger.Error("Failed to release day lock", zap.Error(err))
		}
	}()

	existing, err := s.Repo.GetByWorkerAndDate(workerID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing shifts: %w", err)
	}

	updated := *current
	updated.WorkerID = workerID
	updated.Date = req.Date
	updated.Range = tr
	updated.Function = function
	updated.Note = req.Note

	candidate := updated.Interval()
	if schedule.HasConflict(intervalsOf(existing), candidate) {
		return nil, ConflictError{
			WorkerID:  workerID,
			Date:      req.Date,
			Conflicts: conflicting(existing, candidate),
		}
	}

	if err := s.Repo.Update(&updated); err != nil {
		return nil, err
	}
	logger.Info("Shift updated",
		zap.String("shiftID", updated.ID),
		zap.String("workerID", updated.WorkerID),
		zap.String("date", updated.Date),
	)

	if current.Date != updated.Date {
		s.invalidateDay(current.CompanyID, current.Date)
	}
	s.warnIfUnavailable(updated)
	s.afterWrite(updated)

	if err := s.Notif.NotifyShiftChanged(context.Background(), updated); err != nil {
		logger.Warn("Failed to push shift change", zap.Error(err))
	}

	return &updated, nil
}

// DeleteShift removes a shift. Removal cannot create overlaps, so no day
// lock is taken.
func (s *DefaultShiftService) DeleteShift(id, companyID string) error {
	logger := utils.GetLogger()

	current, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if current == nil || current.CompanyID != companyID {
		return NotFoundError{ID: id}
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	logger.Info("Shift deleted",
		zap.String("shiftID", id),
		zap.String("workerID", current.WorkerID),
		zap.String("date", current.Date),
	)

	s.invalidateDay(current.CompanyID, current.Date)

	if err := s.Notif.NotifyShiftCancelled(context.Background(), *current); err != nil {
		logger.Warn("Failed to push shift cancellation", zap.Error(err))
	}
	return nil
}

// GetShift retrieves one shift scoped to the caller's company.
func (s *DefaultShiftService) GetShift(id, companyID string) (*models.Shift, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil || current.CompanyID != companyID {
		return nil, NotFoundError{ID: id}
	}
	return current, nil
}

// WorkerShifts lists a worker's shifts over an inclusive date range,
// scoped to the caller's company.
func (s *DefaultShiftService) WorkerShifts(companyID, workerID, from, to string) ([]models.Shift, error) {
	if err := validateDate(from); err != nil {
		return nil, err
	}
	if err := validateDate(to); err != nil {
		return nil, err
	}
	shifts, err := s.Repo.GetByWorkerAndDateRange(workerID, from, to)
	if err != nil {
		return nil, err
	}
	scoped := shifts[:0]
	for _, sh := range shifts {
		if sh.CompanyID == companyID {
			scoped = append(scoped, sh)
		}
	}
	return scoped, nil
}

// warnIfUnavailable flags writes that land on a day the worker declared
// unavailable. The write stands; managers override availability, they
// just get told.
func (s *DefaultShiftService) warnIfUnavailable(shift models.Shift) {
	if s.Availability == nil {
		return
	}
	rec, err := s.Availability.GetByWorkerAndDate(shift.WorkerID, shift.Date)
	if err != nil || rec == nil {
		return
	}
	if rec.Status == schedule.StatusUnavailable {
		utils.GetLogger().Warn("Shift scheduled over declared unavailability",
			zap.String("shiftID", shift.ID),
			zap.String("workerID", shift.WorkerID),
			zap.String("date", shift.Date),
		)
	}
}

// afterWrite drops the cached day view and queues the shift reminder.
func (s *DefaultShiftService) afterWrite(shift models.Shift) {
	s.invalidateDay(shift.CompanyID, shift.Date)
	s.enqueueReminder(shift)
}

func (s *DefaultShiftService) invalidateDay(companyID, date string) {
	if err := utils.InvalidateDayView(context.Background(), companyID, date); err != nil {
		utils.GetLogger().Warn("Failed to invalidate day view cache",
			zap.String("companyID", companyID),
			zap.String("date", date),
			zap.Error(err),
		)
	}
}

func (s *DefaultShiftService) enqueueReminder(shift models.Shift) {
	logger := utils.GetLogger()
	if s.AsynqClient == nil {
		return
	}

	fireAt, upcoming, err := tasks.ReminderFireTime(shift, time.Now())
	if err != nil || !upcoming {
		return
	}

	task, opts, err := tasks.NewShiftReminderTask(tasks.ShiftReminderPayload(shift), fireAt)
	if err != nil {
		logger.Error("Failed to build reminder task", zap.Error(err), zap.String("shiftID", shift.ID))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		logger.Error("Failed to enqueue reminder task", zap.Error(err), zap.String("shiftID", shift.ID))
	}
}
