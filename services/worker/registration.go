package worker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shiftwise/models"
	"shiftwise/utils"
)

// LookupCompany resolves a join code to its company. Deactivated
// companies answer the same as unknown codes.
func (s *DefaultWorkerService) LookupCompany(code string) (*models.Company, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, CompanyCodeError{Code: code}
	}

	company, err := s.Companies.GetByCode(normalized)
	if err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}
	if company == nil || !company.Active {
		return nil, CompanyCodeError{Code: normalized}
	}
	return company, nil
}

// SubmitRegistration files an application against a company join code.
// The password is hashed immediately; the request then waits for email
// verification and a manager's review.
func (s *DefaultWorkerService) SubmitRegistration(req RegistrationSubmission) (*models.RegistrationRequest, error) {
	logger := utils.GetLogger()

	company, err := s.LookupCompany(req.Code)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email address is required")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if !models.ValidFunction(req.Function) {
		return nil, fmt.Errorf("unknown function %q", req.Function)
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("this email already belongs to a worker; sign in instead")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	token, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	request := models.RegistrationRequest{
		ID:                uuid.NewString(),
		CompanyID:         company.ID,
		EnteredCode:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Email:             email,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Phone:             strings.TrimSpace(req.Phone),
		Function:          req.Function,
		PasswordHash:      string(hash),
		Status:            models.RegistrationPending,
		VerificationToken: token,
	}

	if err := s.Registrations.Create(&request); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, DuplicateRegistrationError{Email: email}
		}
		return nil, err
	}

	// The verification email would carry the token link. Without a mail
	// provider wired in, surface it in the logs for operators.
	logger.Info("Registration submitted",
		zap.String("requestID", request.ID),
		zap.String("companyID", company.ID),
		zap.String("verificationToken", token),
	)
	return &request, nil
}

// VerifyEmail marks the application behind a verification token as
// verified. Repeat calls succeed quietly.
func (s *DefaultWorkerService) VerifyEmail(token string) error {
	request, err := s.Registrations.GetByVerificationToken(token)
	if err != nil {
		return fmt.Errorf("verification failed, please try again")
	}
	if request == nil {
		return fmt.Errorf("verification link is invalid or expired")
	}
	if request.EmailVerified {
		return nil
	}
	if request.Status != models.RegistrationPending {
		return RegistrationStateError{Reason: "this registration has already been reviewed"}
	}

	request.EmailVerified = true
	return s.Registrations.Update(request)
}

// PendingRegistrations lists verified requests awaiting review.
func (s *DefaultWorkerService) PendingRegistrations(companyID string) ([]models.RegistrationRequest, error) {
	return s.Registrations.GetPendingByCompany(companyID)
}

// reviewableRequest loads a request and checks it can be decided by the
// given reviewer.
func (s *DefaultWorkerService) reviewableRequest(requestID, reviewerID string) (*models.RegistrationRequest, *models.Worker, error) {
	request, err := s.Registrations.GetByID(requestID)
	if err != nil {
		return nil, nil, err
	}
	if request == nil {
		return nil, nil, fmt.Errorf("registration request %s not found", requestID)
	}

	reviewer, err := s.Repo.GetByID(reviewerID)
	if err != nil {
		return nil, nil, fmt.Errorf("reviewer not found: %w", err)
	}
	if reviewer.CompanyID != request.CompanyID || !reviewer.CanApproveWorkers() {
		return nil, nil, fmt.Errorf("you are not allowed to review this registration")
	}

	if request.Status != models.RegistrationPending {
		return nil, nil, RegistrationStateError{Reason: fmt.Sprintf("registration is already %s", request.Status)}
	}
	if !request.EmailVerified {
		return nil, nil, RegistrationStateError{Reason: "the applicant has not verified their email yet"}
	}
	return request, reviewer, nil
}

// ApproveRegistration turns a verified pending request into a worker.
// The username and employee number are generated here, on approval, so
// rejected applicants never consume either.
func (s *DefaultWorkerService) ApproveRegistration(requestID, reviewerID string) (*models.Worker, error) {
	logger := utils.GetLogger()

	request, reviewer, err := s.reviewableRequest(requestID, reviewerID)
	if err != nil {
		return nil, err
	}

	company, err := s.Companies.GetByID(request.CompanyID)
	if err != nil || company == nil {
		return nil, fmt.Errorf("company for this registration no longer exists")
	}

	count, err := s.Repo.CountByCompany(company.ID)
	if err != nil {
		return nil, fmt.Errorf("approval failed, please try again")
	}
	if company.MaxEmployees > 0 && count >= int64(company.MaxEmployees) {
		return nil, RegistrationStateError{Reason: fmt.Sprintf("company %s is at its staff limit (%d)", company.Name, company.MaxEmployees)}
	}

	username, err := s.uniqueUsername(request.FirstName, request.LastName)
	if err != nil {
		return nil, fmt.Errorf("approval failed, please try again")
	}

	now := time.Now()
	newWorker := models.Worker{
		ID:             uuid.NewString(),
		CompanyID:      company.ID,
		Username:       username,
		Email:          request.Email,
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Phone:          request.Phone,
		Function:       request.Function,
		Role:           models.RoleForFunction(request.Function),
		EmployeeNumber: EmployeeNumber(company.Code, count+1),
		HireDate:       now.Format("2006-01-02"),
		Approved:       true,
		ApprovedBy:     reviewer.ID,
		ApprovedAt:     now,
		PasswordHash:   request.PasswordHash,
		Active:         true,
	}

	if err := s.Repo.Create(&newWorker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	request.Status = models.RegistrationApproved
	request.ReviewedBy = reviewer.ID
	request.ReviewedAt = now
	if err := s.Registrations.Update(request); err != nil {
		logger.Error("Worker created but registration not marked approved",
			zap.String("requestID", request.ID),
			zap.String("workerID", newWorker.ID),
			zap.Error(err),
		)
	}

	logger.Info("Registration approved",
		zap.String("requestID", request.ID),
		zap.String("workerID", newWorker.ID),
		zap.String("employeeNumber", newWorker.EmployeeNumber),
	)
	return &newWorker, nil
}

// RejectRegistration turns down a pending request. A reason is required;
// it lands in the notification the applicant eventually sees.
func (s *DefaultWorkerService) RejectRegistration(requestID, reviewerID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("a rejection reason is required")
	}

	request, reviewer, err := s.reviewableRequest(requestID, reviewerID)
	if err != nil {
		return err
	}

	request.Status = models.RegistrationRejected
	request.ReviewedBy = reviewer.ID
	request.ReviewedAt = time.Now()
	request.RejectionReason = strings.TrimSpace(reason)

	if err := s.Registrations.Update(request); err != nil {
		return err
	}
	utils.GetLogger().Info("Registration rejected",
		zap.String("requestID", request.ID),
		zap.String("reviewerID", reviewer.ID),
	)
	return nil
}
