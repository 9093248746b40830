// File: shiftwise/utils/view_cache.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
)

// Rendered day views are expensive enough to cache: every request walks
// the day's shifts through lane assignment and geometry. Entries are
// keyed by company and date and dropped on any shift write for that day.

func dayViewKey(companyID, date string) string {
	return DayViewCachePrefix + companyID + ":" + date
}

// SaveDayView stores a rendered day view in the generic cache. A nil
// cache client turns it into a no-op.
func SaveDayView(ctx context.Context, companyID, date string, view interface{}) error {
	client := GetCacheClient()
	if client == nil {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal day view: %w", err)
	}
	if err := client.Set(ctx, dayViewKey(companyID, date), data, DayViewCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache day view: %w", err)
	}
	return nil
}

// GetDayView loads a cached day view into out. It returns false when the
// entry is missing or unreadable; callers fall through to a fresh render.
func GetDayView(ctx context.Context, companyID, date string, out interface{}) bool {
	client := GetCacheClient()
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, dayViewKey(companyID, date)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false
	}
	return true
}

// InvalidateDayView removes the cached view for one company day.
func InvalidateDayView(ctx context.Context, companyID, date string) error {
	client := GetCacheClient()
	if client == nil {
		return nil
	}
	return client.Del(ctx, dayViewKey(companyID, date)).Err()
}
