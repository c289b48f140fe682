// File: utils/constants.go
package utils

import (
	"time"

	"memoria/config"
)

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 24 * time.Hour

// IsProduction reports whether the server runs with ENV=production.
func IsProduction() bool {
	return config.IsProduction()
}
