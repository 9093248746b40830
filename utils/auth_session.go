// File: shiftwise/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// AuthSession is the cached authorization state for a signed-in worker.
// It carries everything the auth middleware needs to admit a request, so
// a cache hit skips the Mongo lookup entirely.
type AuthSession struct {
	WorkerID  string    `json:"workerId"`
	CompanyID string    `json:"companyId"`
	Role      string    `json:"role"`
	TokenHash string    `json:"tokenHash"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// SaveAuthSession stores the session in the auth cache under the
// worker's ID with the standard TTL.
func SaveAuthSession(session AuthSession) error {
	client := GetAuthCacheClient()
	if client == nil {
		return fmt.Errorf("auth cache client not initialized")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthCachePrefix+session.WorkerID, data, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the cached session for a worker. A redis.Nil
// error passes through unwrapped so callers can tell a miss from a
// failure.
func GetAuthSession(workerID string) (*AuthSession, error) {
	client := GetAuthCacheClient()
	if client == nil {
		return nil, fmt.Errorf("auth cache client not initialized")
	}
	ctx := context.Background()
	data, err := client.Get(ctx, AuthCachePrefix+workerID).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// RefreshAuthSession extends the TTL of an existing session so active
// workers stay on the cache path.
func RefreshAuthSession(workerID string) {
	client := GetAuthCacheClient()
	if client == nil {
		return
	}
	_ = client.Expire(context.Background(), AuthCachePrefix+workerID, AuthCacheTTL).Err()
}

// DeleteAuthSession drops the cached session, forcing the next request
// through the Mongo path. Used on sign-out and whenever a token is
// revoked.
func DeleteAuthSession(workerID string) error {
	client := GetAuthCacheClient()
	if client == nil {
		return nil
	}
	return client.Del(context.Background(), AuthCachePrefix+workerID).Err()
}
