package workerRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"shiftwise/models"
)

// WorkerRepository defines methods for worker data access.
type WorkerRepository interface {
	// GetByID retrieves a worker by its unique ID.
	GetByID(id string) (*models.Worker, error)
	// GetByEmail retrieves a worker by its email address, nil when absent.
	GetByEmail(email string) (*models.Worker, error)
	// GetByUsername retrieves a worker by username, nil when absent.
	GetByUsername(username string) (*models.Worker, error)
	// GetByCompany retrieves all workers in a company.
	GetByCompany(companyID string) ([]models.Worker, error)
	// CountByCompany counts workers ever created in a company, including
	// deactivated ones. Employee numbers are derived from it and must
	// never be reused.
	CountByCompany(companyID string) (int64, error)
	// Create inserts a new worker record.
	Create(worker *models.Worker) error
	// Update modifies an existing worker record.
	Update(worker *models.Worker) error
	// Delete removes a worker record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a worker by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Worker, error)
	// GetByEmailWithProjection retrieves a worker by its email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.Worker, error)
}
