package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"channel-pricer/internal/form"
	"channel-pricer/pkg/redis"
)

const draftKey = "pricer:draft"

// StateStorage keeps the last calculator form. With a Redis client the
// form also survives restarts.
type StateStorage struct {
	redis *redis.Client

	mu     sync.Mutex
	draft  form.Form
	loaded bool
}

func NewStateStorage(redisClient *redis.Client) *StateStorage {
	return &StateStorage{redis: redisClient}
}

func (s *StateStorage) Get(ctx context.Context) (form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded || s.redis == nil {
		return s.draft, nil
	}

	data, err := s.redis.Get(ctx, draftKey)
	if errors.Is(err, redis.ErrNotFound) {
		s.loaded = true
		return s.draft, nil
	}
	if err != nil {
		return form.Form{}, fmt.Errorf("get draft: %w", err)
	}

	var f form.Form
	if err := json.Unmarshal(data, &f); err != nil {
		return form.Form{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	s.draft = f
	s.loaded = true
	return f, nil
}

func (s *StateStorage) Set(ctx context.Context, f form.Form) error {
	s.mu.Lock()
	s.draft = f
	s.loaded = true
	s.mu.Unlock()

	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.redis.Set(ctx, draftKey, data)
}

func (s *StateStorage) Drop(ctx context.Context) error {
	s.mu.Lock()
	s.draft = form.Form{}
	s.loaded = true
	s.mu.Unlock()

	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, draftKey)
}
