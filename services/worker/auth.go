package worker

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shiftwise/utils"
)

const tokenDuration = 24 * time.Hour

// SignIn authenticates a worker by email and password and issues a JWT.
// Only the token's hash is stored; the auth cache is warmed so the first
// authenticated request skips Mongo.
func (s *DefaultWorkerService) SignIn(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	rec, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Error("SignIn: failed to fetch worker", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if !rec.Active {
		return nil, fmt.Errorf("this account has been deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, rec.Email, tokenDuration)
	if err != nil {
		logger.Error("SignIn: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	rec.TokenHash = tokenHash
	if err := s.Repo.Update(rec); err != nil {
		logger.Error("SignIn: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	session := utils.AuthSession{
		WorkerID:  rec.ID,
		CompanyID: rec.CompanyID,
		Role:      rec.Role,
		TokenHash: tokenHash,
		IssuedAt:  time.Now(),
	}
	if err := utils.SaveAuthSession(session); err != nil {
		logger.Warn("SignIn: failed to warm auth cache", zap.Error(err))
	}

	return &AuthResponse{
		ID:             rec.ID,
		Token:          token,
		Username:       rec.Username,
		Email:          rec.Email,
		CompanyID:      rec.CompanyID,
		Role:           rec.Role,
		Function:       rec.Function,
		EmployeeNumber: rec.EmployeeNumber,
	}, nil
}

// SignOut revokes the worker's current token.
func (s *DefaultWorkerService) SignOut(workerID string) error {
	rec, err := s.Repo.GetByID(workerID)
	if err != nil {
		return fmt.Errorf("failed to sign out, please try again")
	}

	rec.TokenHash = ""
	if err := s.Repo.Update(rec); err != nil {
		return fmt.Errorf("failed to sign out, please try again")
	}

	if err := utils.DeleteAuthSession(workerID); err != nil {
		utils.GetLogger().Warn("SignOut: failed to clear auth cache", zap.Error(err))
	}
	return nil
}
