package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"shiftwise/services/worker"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler returns the authenticated worker's profile.
func (h *WorkerHandler) GetProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	rec, err := h.Service.GetWorkerByID(workerID)
	if err != nil {
		logger.Error("Worker not found", zap.String("workerID", workerID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateProfileHandler applies the fields a worker may change on
// themselves.
func (h *WorkerHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	var req worker.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.WorkerID = workerID

	updated, err := h.Service.UpdateProfile(req)
	if err != nil {
		logger.Error("Failed to update profile", zap.String("workerID", workerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ChangePasswordHandler handles PUT /workers/password. It expects
// "currentPassword" and "newPassword" and revokes the active token on
// success.
func (h *WorkerHandler) ChangePasswordHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.ChangePassword(workerID, req.CurrentPassword, req.NewPassword); err != nil {
		logger.Error("Failed to change password", zap.String("workerID", workerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed. Sign in again with the new password."})
}

// UpdateFCMTokenHandler records the device token shift pushes go to.
func (h *WorkerHandler) UpdateFCMTokenHandler(c *gin.Context) {
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateFCMToken(workerID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// UploadAvatarHandler accepts a multipart "avatar" file, stages it on
// disk and hands it to the storage service.
func (h *WorkerHandler) UploadAvatarHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID, ok := requireWorkerID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), workerID+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		logger.Error("Failed to stage avatar upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}
	defer os.Remove(tempFilePath)

	updated, err := h.Service.UploadAvatar(workerID, tempFilePath)
	if err != nil {
		logger.Error("Avatar upload failed", zap.String("workerID", workerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload avatar"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CompanyRosterHandler lists the company's active staff.
func (h *WorkerHandler) CompanyRosterHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	roster, err := h.Service.CompanyRoster(companyID)
	if err != nil {
		logger.Error("Failed to load roster", zap.String("companyID", companyID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": roster})
}

// DeactivateWorkerHandler soft-deletes a worker. Managers only.
func (h *WorkerHandler) DeactivateWorkerHandler(c *gin.Context) {
	logger := utils.GetLogger()
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	if err := h.Service.DeactivateWorker(targetID, companyID); err != nil {
		logger.Error("Failed to deactivate worker", zap.String("workerID", targetID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker deactivated"})
}
