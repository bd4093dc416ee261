package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"brandintel/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisService caches generated brand profiles. Redis is optional: a nil
// service degrades to computing every profile on demand.
type RedisService struct {
	client *redis.Client
}

// NewRedisService connects to Redis and verifies the connection
func NewRedisService(redisURL string) (*RedisService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Redis connection established")
	return &RedisService{client: client}, nil
}

func profileCacheKey(ownerID string) string {
	return "brandintel:profile:" + ownerID
}

// CacheProfile stores a generated profile with the given TTL
func (r *RedisService) CacheProfile(ctx context.Context, profile *models.BrandProfile, ttl time.Duration) error {
	if r == nil {
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return r.client.Set(ctx, profileCacheKey(profile.OwnerID), data, ttl).Err()
}

// GetCachedProfile returns the cached profile for a brand, or nil on a miss
func (r *RedisService) GetCachedProfile(ctx context.Context, ownerID string) (*models.BrandProfile, error) {
	if r == nil {
		return nil, nil
	}

	data, err := r.client.Get(ctx, profileCacheKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached profile: %w", err)
	}

	var profile models.BrandProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// A corrupt cache entry is a miss, not an error
		log.Printf("⚠️ [CACHE] Dropping unreadable profile cache for %s: %v", ownerID, err)
		r.client.Del(ctx, profileCacheKey(ownerID))
		return nil, nil
	}
	return &profile, nil
}

// InvalidateProfile drops the cached profile for a brand
func (r *RedisService) InvalidateProfile(ctx context.Context, ownerID string) error {
	if r == nil {
		return nil
	}
	return r.client.Del(ctx, profileCacheKey(ownerID)).Err()
}

// Close closes the Redis connection
func (r *RedisService) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}
