package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"channel-pricer/internal/settings"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "pricer:settings"

// Storage keeps the settings record as a JSON document under a single key.
type Storage struct {
	client *redis.Client
	key    string
}

// New creates a new Redis client
func New(addr, password string, db int) *Storage {
	return &Storage{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			PoolSize:     4,
			MinIdleConns: 1,
		}),
		key: settingsKey,
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Storage) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *Storage) Load(ctx context.Context) (settings.Settings, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	var p settings.Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return settings.Settings{}, fmt.Errorf("unmarshal failure: %w", err)
	}
	return settings.FromStored(p), nil
}

func (s *Storage) Save(ctx context.Context, st settings.Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *Storage) Reset(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

var _ settings.Store = (*Storage)(nil)
