package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pooya1361/makerspace/internal/models"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheMiss         = errors.New("cache miss")
)

const userKeyPrefix = "user:email:"

// UserCache keeps authenticated users keyed by email so the JWT middleware
// does not hit the database on every request. A nil redis client disables
// caching; all operations degrade gracefully.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserCache{client: client, ttl: ttl}
}

func (c *UserCache) Get(ctx context.Context, email string) (*models.User, error) {
	if c.client == nil {
		return nil, ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, userKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return &user, nil
}

func (c *UserCache) Set(ctx context.Context, user *models.User) error {
	if c.client == nil || user == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return c.client.Set(ctx, userKeyPrefix+user.Email, data, c.ttl).Err()
}

// Invalidate drops a cached user, called after profile or role updates so
// stale roles never outlive the TTL.
func (c *UserCache) Invalidate(ctx context.Context, email string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, userKeyPrefix+email).Err()
}
