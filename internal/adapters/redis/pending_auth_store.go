package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

// PendingAuthStore is a Redis-based store for in-flight login context,
// keyed by OAuth state. Consume uses GETDEL so a pending login can be
// completed at most once even when two callbacks race.
type PendingAuthStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewPendingAuthStore creates a new Redis-based pending auth store.
func NewPendingAuthStore(client redis.UniversalClient, ttl time.Duration) *PendingAuthStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PendingAuthStore{
		client: client,
		prefix: "role-storage:",
		ttl:    ttl,
	}
}

// Save persists a pending login context for its configured TTL.
func (s *PendingAuthStore) Save(ctx context.Context, pending domainauth.PendingAuth) error {
	if pending.State == "" {
		return errors.New("pending auth state cannot be empty")
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("marshal pending auth: %w", err)
	}

	return s.client.Set(ctx, s.prefix+pending.State, data, s.ttl).Err()
}

// Consume retrieves and removes the pending login context for the given state.
func (s *PendingAuthStore) Consume(ctx context.Context, state string) (domainauth.PendingAuth, error) {
	if state == "" {
		return domainauth.PendingAuth{}, ErrNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.PendingAuth{}, ErrNotFound
		}
		return domainauth.PendingAuth{}, fmt.Errorf("redis getdel: %w", err)
	}

	var pending domainauth.PendingAuth
	if unmarshalErr := json.Unmarshal([]byte(data), &pending); unmarshalErr != nil {
		return domainauth.PendingAuth{}, fmt.Errorf("unmarshal pending auth: %w", unmarshalErr)
	}
	return pending, nil
}
