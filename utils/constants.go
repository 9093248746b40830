// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DayViewCachePrefix is the prefix for cached rendered day views,
// keyed by company and date.
const DayViewCachePrefix = "dayview:"

// DayViewCacheTTL bounds how stale a cached day view can get even if an
// invalidation is missed.
const DayViewCacheTTL = 5 * time.Minute
