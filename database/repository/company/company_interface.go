package companyRepo

import "shiftwise/models"

// CompanyRepository defines methods for company data access.
type CompanyRepository interface {
	// GetByID retrieves a company by its unique ID.
	GetByID(id string) (*models.Company, error)
	// GetByCode retrieves a company by join code, nil when absent.
	GetByCode(code string) (*models.Company, error)
	// Create inserts a new company record.
	Create(company *models.Company) error
	// Update modifies an existing company record.
	Update(company *models.Company) error
}
