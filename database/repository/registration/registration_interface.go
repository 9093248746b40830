package registrationRepo

import "shiftwise/models"

// RegistrationRepository defines methods for registration request data access.
type RegistrationRepository interface {
	// GetByID retrieves a request by its unique ID, nil when absent.
	GetByID(id string) (*models.RegistrationRequest, error)
	// GetByVerificationToken resolves an email verification link.
	GetByVerificationToken(token string) (*models.RegistrationRequest, error)
	// GetPendingByCompany lists verified requests awaiting review.
	GetPendingByCompany(companyID string) ([]models.RegistrationRequest, error)
	// Create inserts a new request. At most one pending request may exist
	// per (email, companyId); the partial unique index enforces it.
	Create(req *models.RegistrationRequest) error
	// Update modifies an existing request record.
	Update(req *models.RegistrationRequest) error
}
