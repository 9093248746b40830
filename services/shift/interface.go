package shift

import (
	"github.com/hibiken/asynq"

	availabilityRepo "shiftwise/database/repository/availability"
	shiftRepo "shiftwise/database/repository/shift"
	workerRepo "shiftwise/database/repository/worker"
	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/services/notification"
)

// ShiftService owns everything that reads or writes the roster.
type ShiftService interface {
	// Writes. All of them run the overlap gate under the worker-day lock.
	CreateShift(req CreateShiftRequest) (*models.Shift, error)
	UpdateShift(req UpdateShiftRequest) (*models.Shift, error)
	DeleteShift(id, companyID string) error

	// Reads.
	GetShift(id, companyID string) (*models.Shift, error)
	WorkerShifts(companyID, workerID, from, to string) ([]models.Shift, error)

	// Calendar views. All three feed the same lane allocator.
	DayView(companyID, date string) (*models.DayView, error)
	WeekView(companyID, anchorDate string) (*models.WeekView, error)
	MonthView(companyID string, year, month int) (*models.MonthView, error)

	// Reports.
	WeekHours(companyID, anchorDate string) (*models.WeekHoursReport, error)
}

// DefaultShiftService is the production implementation.
type DefaultShiftService struct {
	Repo         shiftRepo.ShiftRepository
	Workers      workerRepo.WorkerRepository
	Availability availabilityRepo.AvailabilityRepository
	Window       schedule.Window
	Notif        notification.NotificationService
	AsynqClient  *asynq.Client
}

// CreateShiftRequest carries a new shift. End is ignored when Open is set.
type CreateShiftRequest struct {
	CompanyID string `json:"-"`
	WorkerID  string `json:"workerId"`
	Date      string `json:"date"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Open      bool   `json:"open"`
	Function  string `json:"function"`
	Note      string `json:"note"`
	CreatedBy string `json:"-"`
}

// UpdateShiftRequest rewrites an existing shift. The whole range comes
// back from the client; partial time edits are indistinguishable from
// full ones once the overlap gate runs.
type UpdateShiftRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`
	WorkerID  string `json:"workerId"`
	Date      string `json:"date"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Open      bool   `json:"open"`
	Function  string `json:"function"`
	Note      string `json:"note"`
}
