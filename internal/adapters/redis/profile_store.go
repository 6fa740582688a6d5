package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

// ProfileStore is a Redis-based store for user profiles, keyed by user ID.
// Profiles have no TTL; they live until the user is deleted.
type ProfileStore struct {
	client redis.UniversalClient
	prefix string
}

// NewProfileStore creates a new Redis-based profile store.
func NewProfileStore(client redis.UniversalClient) *ProfileStore {
	return &ProfileStore{
		client: client,
		prefix: "user-storage:",
	}
}

// NewProfileStoreWithPrefix creates a Redis profile store with a custom key prefix.
func NewProfileStoreWithPrefix(client redis.UniversalClient, prefix string) *ProfileStore {
	return &ProfileStore{
		client: client,
		prefix: prefix,
	}
}

// Save persists the profile for the given user. Email is immutable: when a
// profile already exists for the user, the stored email wins over the
// incoming value.
func (s *ProfileStore) Save(ctx context.Context, userID string, profile domainauth.UserProfile) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}

	existing, err := s.Get(ctx, userID)
	if err == nil && existing.Email != "" {
		profile.Email = existing.Email
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return s.client.Set(ctx, s.prefix+userID, data, 0).Err()
}

// Get retrieves the profile for the given user.
func (s *ProfileStore) Get(ctx context.Context, userID string) (domainauth.UserProfile, error) {
	if userID == "" {
		return domainauth.UserProfile{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.UserProfile{}, ErrNotFound
		}
		return domainauth.UserProfile{}, fmt.Errorf("redis get: %w", err)
	}

	var profile domainauth.UserProfile
	if unmarshalErr := json.Unmarshal([]byte(data), &profile); unmarshalErr != nil {
		return domainauth.UserProfile{}, fmt.Errorf("unmarshal profile: %w", unmarshalErr)
	}
	return profile, nil
}

// Delete removes the profile for the given user.
func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.prefix+userID).Err()
}
