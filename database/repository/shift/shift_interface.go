package shiftRepo

import "shiftwise/models"

// ShiftRepository defines methods for shift data access.
type ShiftRepository interface {
	// GetByID retrieves a shift by its unique ID.
	GetByID(id string) (*models.Shift, error)
	// GetByWorkerAndDate retrieves all of a worker's shifts on one date.
	GetByWorkerAndDate(workerID, date string) ([]models.Shift, error)
	// GetByCompanyAndDate retrieves every shift in a company on one date.
	GetByCompanyAndDate(companyID, date string) ([]models.Shift, error)
	// GetByCompanyAndDateRange retrieves company shifts with from <= date <= to.
	GetByCompanyAndDateRange(companyID, from, to string) ([]models.Shift, error)
	// GetByWorkerAndDateRange retrieves a worker's shifts with from <= date <= to.
	GetByWorkerAndDateRange(workerID, from, to string) ([]models.Shift, error)
	// Create inserts a new shift record.
	Create(shift *models.Shift) error
	// Update modifies an existing shift record.
	Update(shift *models.Shift) error
	// Delete removes a shift record by its ID.
	Delete(id string) error

	// AcquireDayLock takes the advisory write lock for one worker-day.
	// It returns false when another writer already holds it.
	AcquireDayLock(workerID, date string) (bool, error)
	// ReleaseDayLock drops the advisory lock. Expired locks also fall out
	// through the TTL index, so a crashed writer cannot wedge the day.
	ReleaseDayLock(workerID, date string) error
}
