package worker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shiftwise/models"
)

// OwnerBootstrap carries the credentials for a company's founding owner.
type OwnerBootstrap struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// CreateOwner creates the founding owner of a new company. Owners skip
// the registration queue; there is nobody to approve them yet.
func (s *DefaultWorkerService) CreateOwner(companyID string, boot OwnerBootstrap) (*models.Worker, error) {
	email := strings.ToLower(strings.TrimSpace(boot.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid owner email address is required")
	}
	if strings.TrimSpace(boot.FirstName) == "" || strings.TrimSpace(boot.LastName) == "" {
		return nil, fmt.Errorf("the owner's first and last name are required")
	}
	if err := VerifyPasswordComplexity(boot.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("owner creation failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("this email already belongs to a worker")
	}

	company, err := s.Companies.GetByID(companyID)
	if err != nil || company == nil {
		return nil, fmt.Errorf("company %s not found", companyID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(boot.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	username, err := s.uniqueUsername(boot.FirstName, boot.LastName)
	if err != nil {
		return nil, fmt.Errorf("owner creation failed, please try again")
	}
	count, err := s.Repo.CountByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("owner creation failed, please try again")
	}

	now := time.Now()
	owner := models.Worker{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		Username:       username,
		Email:          email,
		FirstName:      strings.TrimSpace(boot.FirstName),
		LastName:       strings.TrimSpace(boot.LastName),
		Phone:          strings.TrimSpace(boot.Phone),
		Function:       models.FunctionManager,
		Role:           models.RoleOwner,
		EmployeeNumber: EmployeeNumber(company.Code, count+1),
		HireDate:       now.Format("2006-01-02"),
		Approved:       true,
		ApprovedAt:     now,
		PasswordHash:   string(hash),
		Active:         true,
	}

	if err := s.Repo.Create(&owner); err != nil {
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	owner.PasswordHash = ""
	return &owner, nil
}
