package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"maplemed-support-be/internal/repository/contract"
	"maplemed-support-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "support:profile:"

// RedisProfileRepository stores each profile as one JSON value.
// A zero ttl keeps profiles until deleted.
type RedisProfileRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProfileRepository(rdb *redis.Client, ttl time.Duration) contract.ProfileRepository {
	return &RedisProfileRepository{rdb: rdb, ttl: ttl}
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (r *RedisProfileRepository) FindByUserID(ctx context.Context, userID string) (*store.Profile, error) {
	raw, err := r.rdb.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get profile: %w", err)
	}

	var p store.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if p.Values == nil {
		p.Values = map[string]string{}
	}
	if p.Persistent == nil {
		p.Persistent = map[string]string{}
	}
	return &p, nil
}

func (r *RedisProfileRepository) Save(ctx context.Context, profile *store.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := r.rdb.Set(ctx, profileKey(profile.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set profile: %w", err)
	}
	return nil
}

func (r *RedisProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, profileKey(userID)).Err()
}
