package worker

import (
	companyRepo "shiftwise/database/repository/company"
	registrationRepo "shiftwise/database/repository/registration"
	workerRepo "shiftwise/database/repository/worker"
	"shiftwise/models"
	"shiftwise/services/storage"
)

type WorkerService interface {
	// Registration workflow
	LookupCompany(code string) (*models.Company, error)
	SubmitRegistration(req RegistrationSubmission) (*models.RegistrationRequest, error)
	VerifyEmail(token string) error
	PendingRegistrations(companyID string) ([]models.RegistrationRequest, error)
	ApproveRegistration(requestID, reviewerID string) (*models.Worker, error)
	RejectRegistration(requestID, reviewerID, reason string) error

	// Bootstrap
	CreateOwner(companyID string, boot OwnerBootstrap) (*models.Worker, error)

	// Authentication
	SignIn(email, password string) (*AuthResponse, error)
	SignOut(workerID string) error

	// Worker Management
	GetWorkerByID(workerID string) (*models.Worker, error)
	CompanyRoster(companyID string) ([]models.Worker, error)
	UpdateProfile(req ProfileUpdate) (*models.Worker, error)
	ChangePassword(workerID, currentPassword, newPassword string) error
	UpdateFCMToken(workerID, token string) error
	UploadAvatar(workerID, localFilePath string) (*models.Worker, error)
	DeactivateWorker(workerID, companyID string) error
}

// DefaultWorkerService is the production implementation.
type DefaultWorkerService struct {
	Repo          workerRepo.WorkerRepository
	Companies     companyRepo.CompanyRepository
	Registrations registrationRepo.RegistrationRepository
	Storage       storage.StorageService
}

// RegistrationSubmission is the application a would-be worker files with
// a company join code.
type RegistrationSubmission struct {
	Code      string `json:"code"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Function  string `json:"function"`
	Password  string `json:"password"`
}

// ProfileUpdate carries the fields a worker may change on themselves.
type ProfileUpdate struct {
	WorkerID  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// AuthResponse contains the worker's ID, token, and additional details.
type AuthResponse struct {
	ID             string `json:"id"`
	Token          string `json:"token"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	CompanyID      string `json:"companyId"`
	Role           string `json:"role"`
	Function       string `json:"function"`
	EmployeeNumber string `json:"employeeNumber"`
}
