package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shiftwise/models"
	"shiftwise/utils"
)

// sensitiveFields are never returned from profile reads.
var sensitiveFields = bson.M{"passwordHash": 0, "tokenHash": 0}

// GetWorkerByID retrieves a worker, excluding credential hashes.
func (s *DefaultWorkerService) GetWorkerByID(workerID string) (*models.Worker, error) {
	rec, err := s.Repo.GetByIDWithProjection(workerID, sensitiveFields)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return rec, nil
}

// CompanyRoster lists a company's workers in employee-number order.
func (s *DefaultWorkerService) CompanyRoster(companyID string) ([]models.Worker, error) {
	workers, err := s.Repo.GetByCompany(companyID)
	if err != nil {
		return nil, err
	}
	for i := range workers {
		workers[i].PasswordHash = ""
		workers[i].TokenHash = ""
	}
	return workers, nil
}

// UpdateProfile applies the fields a worker may change on themselves.
func (s *DefaultWorkerService) UpdateProfile(req ProfileUpdate) (*models.Worker, error) {
	rec, err := s.Repo.GetByID(req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("worker not found: %w", err)
	}

	changed := false
	if v := strings.TrimSpace(req.FirstName); v != "" && v != rec.FirstName {
		rec.FirstName = v
		changed = true
	}
	if v := strings.TrimSpace(req.LastName); v != "" && v != rec.LastName {
		rec.LastName = v
		changed = true
	}
	if v := strings.TrimSpace(req.Phone); v != "" && v != rec.Phone {
		rec.Phone = v
		changed = true
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" && v != rec.Email {
		if !strings.Contains(v, "@") {
			return nil, fmt.Errorf("a valid email address is required")
		}
		rec.Email = v
		changed = true
	}

	if !changed {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.Update(rec); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}
	return s.GetWorkerByID(req.WorkerID)
}

// ChangePassword verifies the current password before storing a new one.
// The active token is revoked so other sessions fall off.
func (s *DefaultWorkerService) ChangePassword(workerID, currentPassword, newPassword string) error {
	rec, err := s.Repo.GetByID(workerID)
	if err != nil {
		return fmt.Errorf("worker not found: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	rec.PasswordHash = string(hash)
	rec.TokenHash = ""
	if err := s.Repo.Update(rec); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := utils.DeleteAuthSession(workerID); err != nil {
		utils.GetLogger().Warn("ChangePassword: failed to clear auth cache", zap.Error(err))
	}
	return nil
}

// UpdateFCMToken records the device token shift pushes go to.
func (s *DefaultWorkerService) UpdateFCMToken(workerID, token string) error {
	rec, err := s.Repo.GetByID(workerID)
	if err != nil {
		return fmt.Errorf("worker not found: %w", err)
	}
	rec.FCMToken = strings.TrimSpace(token)
	return s.Repo.Update(rec)
}

// UploadAvatar stores a new avatar and records its delivery URL.
func (s *DefaultWorkerService) UploadAvatar(workerID, localFilePath string) (*models.Worker, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("avatar storage is not configured")
	}

	rec, err := s.Repo.GetByID(workerID)
	if err != nil {
		return nil, fmt.Errorf("worker not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID, err := s.Storage.UploadAvatar(ctx, localFilePath, workerID)
	if err != nil {
		return nil, err
	}
	url, err := s.Storage.AvatarURL(publicID)
	if err != nil {
		return nil, err
	}

	rec.Avatar = url
	if err := s.Repo.Update(rec); err != nil {
		return nil, fmt.Errorf("failed to record avatar: %w", err)
	}
	return s.GetWorkerByID(workerID)
}

// DeactivateWorker soft-deletes a worker: they drop off rosters and can
// no longer sign in, but their shift history stays intact.
func (s *DefaultWorkerService) DeactivateWorker(workerID, companyID string) error {
	rec, err := s.Repo.GetByID(workerID)
	if err != nil {
		return fmt.Errorf("worker not found: %w", err)
	}
	if rec.CompanyID != companyID {
		return fmt.Errorf("worker %s not found", workerID)
	}

	rec.Active = false
	rec.TokenHash = ""
	if err := s.Repo.Update(rec); err != nil {
		return fmt.Errorf("failed to deactivate worker: %w", err)
	}

	if err := utils.DeleteAuthSession(workerID); err != nil {
		utils.GetLogger().Warn("DeactivateWorker: failed to clear auth cache", zap.Error(err))
	}
	return nil
}
