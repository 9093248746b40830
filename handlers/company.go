package handlers

import (
	"net/http"

	"shiftwise/services/company"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CompanyHandler exposes tenant management endpoints.
type CompanyHandler struct {
	Service company.CompanyService
}

func NewCompanyHandler(svc company.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: svc}
}

// CreateCompanyHandler handles POST /companies. This is the public
// bootstrap: it provisions the company, its join code and the owner
// account in one call.
func (h *CompanyHandler) CreateCompanyHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req company.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	boot, err := h.Service.CreateCompany(req)
	if err != nil {
		logger.Error("Company creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, boot)
}

// GetCompanyHandler returns the caller's company.
func (h *CompanyHandler) GetCompanyHandler(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	rec, err := h.Service.GetCompany(companyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateCompanyHandler applies non-empty fields. Managers only.
func (h *CompanyHandler) UpdateCompanyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var req company.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = companyID

	updated, err := h.Service.UpdateCompany(req)
	if err != nil {
		logger.Error("Company update failed", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RotateJoinCodeHandler replaces the join code, e.g. after it leaked.
// Managers only.
func (h *CompanyHandler) RotateJoinCodeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	updated, err := h.Service.RotateJoinCode(companyID)
	if err != nil {
		logger.Error("Join code rotation failed", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate join code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": updated.Code})
}

// DeactivateCompanyHandler pulls the company out of service. Owner only.
func (h *CompanyHandler) DeactivateCompanyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	if err := h.Service.DeactivateCompany(companyID); err != nil {
		logger.Error("Company deactivation failed", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deactivated"})
}
