// File: shiftwise/handlers/bundle.go
package handlers

import (
	workerRepoPkg "shiftwise/database/repository/worker"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct. The
// worker repository rides along because the auth middleware needs it.
type HandlerBundle struct {
	WorkerRepo workerRepoPkg.WorkerRepository

	// Company endpoints
	CreateCompanyHandler     gin.HandlerFunc
	GetCompanyHandler        gin.HandlerFunc
	UpdateCompanyHandler     gin.HandlerFunc
	RotateJoinCodeHandler    gin.HandlerFunc
	DeactivateCompanyHandler gin.HandlerFunc

	// Registration and auth endpoints
	LookupCompanyHandler        gin.HandlerFunc
	RegisterHandler             gin.HandlerFunc
	VerifyEmailHandler          gin.HandlerFunc
	PendingRegistrationsHandler gin.HandlerFunc
	ApproveRegistrationHandler  gin.HandlerFunc
	RejectRegistrationHandler   gin.HandlerFunc
	SignInHandler               gin.HandlerFunc
	SignOutHandler              gin.HandlerFunc

	// Worker endpoints
	GetProfileHandler       gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	ChangePasswordHandler   gin.HandlerFunc
	UpdateFCMTokenHandler   gin.HandlerFunc
	UploadAvatarHandler     gin.HandlerFunc
	CompanyRosterHandler    gin.HandlerFunc
	DeactivateWorkerHandler gin.HandlerFunc

	// Shift endpoints
	CreateShiftHandler  gin.HandlerFunc
	UpdateShiftHandler  gin.HandlerFunc
	DeleteShiftHandler  gin.HandlerFunc
	GetShiftHandler     gin.HandlerFunc
	MyShiftsHandler     gin.HandlerFunc
	WorkerShiftsHandler gin.HandlerFunc

	// Calendar endpoints
	DayViewHandler   gin.HandlerFunc
	WeekViewHandler  gin.HandlerFunc
	MonthViewHandler gin.HandlerFunc

	// Availability endpoints
	SetAvailabilityHandler     gin.HandlerFunc
	ClearAvailabilityHandler   gin.HandlerFunc
	MyAvailabilityWeekHandler  gin.HandlerFunc
	CompanyAvailabilityHandler gin.HandlerFunc

	// Report endpoints
	WeekHoursHandler gin.HandlerFunc
}
