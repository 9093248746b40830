package availabilityRepo

import "shiftwise/models"

// AvailabilityRepository defines methods for availability data access.
// The collection carries a unique (workerId, date) index, so two racing
// writers for the same day resolve at the database instead of silently
// forking the record.
type AvailabilityRepository interface {
	// Upsert creates or replaces the worker's record for one date.
	Upsert(rec *models.AvailabilityRecord) error
	// GetByWorkerAndDate retrieves one record, nil when the day is unset.
	GetByWorkerAndDate(workerID, date string) (*models.AvailabilityRecord, error)
	// GetByWorkerAndDateRange retrieves records with from <= date <= to.
	GetByWorkerAndDateRange(workerID, from, to string) ([]models.AvailabilityRecord, error)
	// GetByCompanyAndDateRange retrieves all company records in the range.
	GetByCompanyAndDateRange(companyID, from, to string) ([]models.AvailabilityRecord, error)
	// Delete removes the worker's record for one date, returning the day
	// to unset.
	Delete(workerID, date string) error
}
