package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Derived-view cache keys. Every key here is cleared wholesale by
// InvalidateLedgerCaches on any ledger write.
const (
	ChapterSummaryKeyFmt = "summary:chapter:%d" // chapterID
	NationalSummaryKey   = "summary:national"
	CashPositionKeyFmt   = "cash:%s"     // "national" or "chapter:<id>"
	ReconciliationKeyFmt = "recon:%s:%s" // boundary, "national" or "chapter:<id>"
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// ============================================
// Generic Cache Functions
// ============================================

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// ============================================
// Cache Invalidation Functions
// ============================================

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ============================================
// Entity-Based Cache Invalidators
// ============================================

// InvalidateLedgerCaches clears every derived view for a chapter scope.
// Called whenever a transaction, transfer, receipt or bank movement is
// written: all summaries, positions and reconciliation rows derive from
// the same event tables, so they expire together.
func InvalidateLedgerCaches(ctx context.Context, chapterID *int) {
	InvalidatePattern(ctx, "summary:*")
	InvalidatePattern(ctx, "pending:*")
	if chapterID != nil {
		InvalidateKeys(ctx, fmt.Sprintf(CashPositionKeyFmt, fmt.Sprintf("chapter:%d", *chapterID)))
		InvalidatePattern(ctx, fmt.Sprintf("recon:*:chapter:%d", *chapterID))
	}
	// National views roll chapters up, so they expire on every write
	InvalidateKeys(ctx, fmt.Sprintf(CashPositionKeyFmt, "national"))
	InvalidatePattern(ctx, "recon:*:national")
}

// InvalidateMemberCaches clears member listings and pending contribution views
// Called when: CreateMember, UpdateMember, DeactivateMember
func InvalidateMemberCaches(ctx context.Context) {
	InvalidatePattern(ctx, "members:*")
	InvalidatePattern(ctx, "pending:*")
	InvalidatePattern(ctx, "summary:*")
}

// InvalidatePurposeCaches clears purpose listings and everything derived
// from purpose targets
// Called when: CreatePurpose, UpdatePurpose, DeactivatePurpose
func InvalidatePurposeCaches(ctx context.Context) {
	InvalidatePattern(ctx, "purposes:*")
	InvalidatePattern(ctx, "summary:*")
	InvalidatePattern(ctx, "pending:*")
}

// InvalidateUserCaches clears all user-related caches
// Called when: CreateUser, UpdateUser, DeactivateUser
func InvalidateUserCaches(ctx context.Context) {
	InvalidatePattern(ctx, "users:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
