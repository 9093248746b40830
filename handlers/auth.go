package handlers

import (
	"errors"
	"net/http"

	"shiftwise/services/worker"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkerHandler exposes the registration workflow, authentication and
// worker management endpoints.
type WorkerHandler struct {
	Service worker.WorkerService
}

func NewWorkerHandler(svc worker.WorkerService) *WorkerHandler {
	return &WorkerHandler{Service: svc}
}

// LookupCompanyHandler handles POST /auth/lookup-company. Applicants
// call it with a join code before filing a registration.
func (h *WorkerHandler) LookupCompanyHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	company, err := h.Service.LookupCompany(req.Code)
	if err != nil {
		var codeErr worker.CompanyCodeError
		if errors.As(err, &codeErr) {
			c.JSON(http.StatusNotFound, gin.H{"error": codeErr.Error()})
			return
		}
		logger.Error("Company lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Company lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          company.ID,
		"name":        company.Name,
		"cuisineType": company.CuisineType,
	})
}

// RegisterHandler handles POST /auth/register.
func (h *WorkerHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req worker.RegistrationSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	request, err := h.Service.SubmitRegistration(req)
	if err != nil {
		var codeErr worker.CompanyCodeError
		var dupErr worker.DuplicateRegistrationError
		switch {
		case errors.As(err, &codeErr):
			c.JSON(http.StatusNotFound, gin.H{"error": codeErr.Error()})
		case errors.As(err, &dupErr):
			c.JSON(http.StatusConflict, gin.H{"error": dupErr.Error()})
		default:
			logger.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration submitted. Verify your email, then wait for a manager to approve you.",
		"request": request,
	})
}

// VerifyEmailHandler handles GET /auth/verify-email/:token.
func (h *WorkerHandler) VerifyEmailHandler(c *gin.Context) {
	token := c.Param("token")
	if err := h.Service.VerifyEmail(token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. A manager will review your registration."})
}

// PendingRegistrationsHandler handles GET /auth/pending-registrations.
// Managers only.
func (h *WorkerHandler) PendingRegistrationsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	requests, err := h.Service.PendingRegistrations(companyID)
	if err != nil {
		logger.Error("Failed to list pending registrations", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ApproveRegistrationHandler handles POST /auth/approve-registration/:id.
func (h *WorkerHandler) ApproveRegistrationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	reviewerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	requestID := c.Param("id")

	created, err := h.Service.ApproveRegistration(requestID, reviewerID)
	if err != nil {
		var stateErr worker.RegistrationStateError
		if errors.As(err, &stateErr) {
			c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
			return
		}
		logger.Error("Approval failed", zap.String("requestID", requestID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration approved",
		"worker":  created,
	})
}

// RejectRegistrationHandler handles POST /auth/reject-registration/:id.
func (h *WorkerHandler) RejectRegistrationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	reviewerID, ok := requireWorkerID(c)
	if !ok {
		return
	}
	requestID := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.RejectRegistration(requestID, reviewerID, req.Reason); err != nil {
		var stateErr worker.RegistrationStateError
		if errors.As(err, &stateErr) {
			c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
			return
		}
		logger.Error("Rejection failed", zap.String("requestID", requestID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration rejected"})
}

// SignInHandler handles POST /auth/login.
func (h *WorkerHandler) SignInHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, err := h.Service.SignIn(req.Email, req.Password)
	if err != nil {
		logger.Warn("Sign-in refused", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, auth)
}

// SignOutHandler handles POST /auth/logout.
func (h *WorkerHandler) SignOutHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	if err := h.Service.SignOut(workerID); err != nil {
		logger.Error("Sign-out failed", zap.String("workerID", workerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
