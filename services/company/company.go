package company

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	companyRepo "shiftwise/database/repository/company"
	"shiftwise/models"
	"shiftwise/services/worker"
	"shiftwise/utils"
)

// codeAttempts bounds how often company creation retries a colliding
// join code before giving up.
const codeAttempts = 5

// CompanyService defines methods for managing restaurant tenants.
type CompanyService interface {
	// CreateCompany provisions a company together with its founding
	// owner and a fresh join code.
	CreateCompany(req CreateCompanyRequest) (*Bootstrap, error)
	// GetCompany retrieves one company.
	GetCompany(id string) (*models.Company, error)
	// UpdateCompany applies non-empty fields.
	UpdateCompany(req UpdateCompanyRequest) (*models.Company, error)
	// RotateJoinCode replaces the join code, e.g. after it leaked.
	RotateJoinCode(id string) (*models.Company, error)
	// DeactivateCompany pulls the company out of service; its join code
	// stops resolving.
	DeactivateCompany(id string) error
}

// DefaultCompanyService is the production implementation.
type DefaultCompanyService struct {
	Repo    companyRepo.CompanyRepository
	Workers worker.WorkerService
}

// CreateCompanyRequest provisions a new tenant.
type CreateCompanyRequest struct {
	Name         string                `json:"name"`
	Address      string                `json:"address"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	CuisineType  string                `json:"cuisineType"`
	MaxEmployees int                   `json:"maxEmployees"`
	Owner        worker.OwnerBootstrap `json:"owner"`
}

// UpdateCompanyRequest applies partial changes.
type UpdateCompanyRequest struct {
	ID           string `json:"-"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CuisineType  string `json:"cuisineType"`
	MaxEmployees int    `json:"maxEmployees"`
}

// Bootstrap is what company creation hands back: the tenant, its join
// code, and the owner account to sign in with.
type Bootstrap struct {
	Company models.Company `json:"company"`
	Owner   models.Worker  `json:"owner"`
}

// CreateCompany provisions the company and its owner. The join code is
// generated here and only ever handed out by managers.
func (s *DefaultCompanyService) CreateCompany(req CreateCompanyRequest) (*Bootstrap, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if req.MaxEmployees < 0 {
		return nil, fmt.Errorf("max employees cannot be negative")
	}

	company := models.Company{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		CuisineType:  strings.TrimSpace(req.CuisineType),
		MaxEmployees: req.MaxEmployees,
		Active:       true,
	}

	created := false
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		company.Code = code

		err = s.Repo.Create(&company)
		if err == nil {
			created = true
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	if !created {
		return nil, fmt.Errorf("could not allocate a unique join code, please try again")
	}

	owner, err := s.Workers.CreateOwner(company.ID, req.Owner)
	if err != nil {
		// Leave no usable half-provisioned tenant behind.
		company.Active = false
		if derr := s.Repo.Update(&company); derr != nil {
			logger.Error("Failed to deactivate company after owner bootstrap failure",
				zap.String("companyID", company.ID),
				zap.Error(derr),
			)
		}
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	logger.Info("Company created",
		zap.String("companyID", company.ID),
		zap.String("code", company.Code),
		zap.String("ownerID", owner.ID),
	)
	return &Bootstrap{Company: company, Owner: *owner}, nil
}

// GetCompany retrieves one company.
func (s *DefaultCompanyService) GetCompany(id string) (*models.Company, error) {
	company, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %s not found", id)
	}
	return company, nil
}

// UpdateCompany applies non-empty fields.
func (s *DefaultCompanyService) UpdateCompany(req UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.GetCompany(req.ID)
	if err != nil {
		return nil, err
	}

	changed := false
	if v := strings.TrimSpace(req.Name); v != "" && v != company.Name {
		company.Name = v
		changed = true
	}
	if v := strings.TrimSpace(req.Address); v != "" && v != company.Address {
		company.Address = v
		changed = true
	}
	if v := strings.TrimSpace(req.Phone); v != "" && v != company.Phone {
		company.Phone = v
		changed = true
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" && v != company.Email {
		company.Email = v
		changed = true
	}
	if v := strings.TrimSpace(req.CuisineType); v != "" && v != company.CuisineType {
		company.CuisineType = v
		changed = true
	}
	if req.MaxEmployees > 0 && req.MaxEmployees != company.MaxEmployees {
		company.MaxEmployees = req.MaxEmployees
		changed = true
	}

	if !changed {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if err := s.Repo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// RotateJoinCode replaces the join code with a fresh one. Registrations
// quoting the old code stop resolving immediately.
func (s *DefaultCompanyService) RotateJoinCode(id string) (*models.Company, error) {
	company, err := s.GetCompany(id)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		company.Code = code

		err = s.Repo.Update(company)
		if err == nil {
			utils.GetLogger().Info("Join code rotated", zap.String("companyID", company.ID))
			return company, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate a unique join code, please try again")
}

// DeactivateCompany pulls the tenant out of service.
func (s *DefaultCompanyService) DeactivateCompany(id string) error {
	company, err := s.GetCompany(id)
	if err != nil {
		return err
	}
	company.Active = false
	return s.Repo.Update(company)
}
