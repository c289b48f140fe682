// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"memoria/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for authorization caching. It is
// nil when Redis is unconfigured; callers must treat it as optional.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
// Returns false when Redis is unconfigured or unreachable; token validation
// then falls back to stateless JWT checks.
func InitAuthCache() bool {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("Redis unconfigured; auth cache disabled")
		return false
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Sugar().Warnf("Failed to connect to Redis (Auth Cache): %v", err)
		return false
	}
	AuthCacheClient = client
	return true
}

// GetAuthCacheClient returns the Redis client for authorization caching, or
// nil when the cache is disabled.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CacheTokenHash stores the hash of an issued token so it can be revoked.
func CacheTokenHash(userID, tokenHash string) error {
	client := GetAuthCacheClient()
	if client == nil {
		return nil
	}
	ctx := context.Background()
	return client.Set(ctx, AuthCachePrefix+userID, tokenHash, AuthCacheTTL).Err()
}

// CheckTokenHash verifies a token hash against the cache. When the cache is
// disabled every hash passes; revocation then relies on token expiry alone.
func CheckTokenHash(userID, tokenHash string) bool {
	client := GetAuthCacheClient()
	if client == nil {
		return true
	}
	ctx := context.Background()
	cached, err := client.Get(ctx, AuthCachePrefix+userID).Result()
	if err != nil {
		return false
	}
	return cached == tokenHash
}

// DropTokenHash removes the cached token hash, revoking the session.
func DropTokenHash(userID string) error {
	client := GetAuthCacheClient()
	if client == nil {
		return nil
	}
	ctx := context.Background()
	return client.Del(ctx, AuthCachePrefix+userID).Err()
}
