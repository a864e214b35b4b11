// Package snapshot materializes full upstream result sets into redis so that
// repeated dashboard loads in fetch-all mode do not re-walk every upstream
// page. A snapshot is an explicit, bounded copy with a TTL, not a cache with
// eviction semantics.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aussiemate/models"

	"github.com/go-redis/redis/v8"
)

const (
	keyCleaners = "snapshot:cleaners"
	keyJobs     = "snapshot:jobs"
)

// ErrMissing is returned when no snapshot has been materialized yet.
var ErrMissing = fmt.Errorf("snapshot not materialized")

// Store reads and writes list snapshots.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a snapshot store with the given TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, out interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrMissing
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}
	return nil
}

// SaveCleaners stores the full cleaner list.
func (s *Store) SaveCleaners(ctx context.Context, cleaners []models.Cleaner) error {
	return s.save(ctx, keyCleaners, cleaners)
}

// LoadCleaners returns the materialized cleaner list, or ErrMissing.
func (s *Store) LoadCleaners(ctx context.Context) ([]models.Cleaner, error) {
	var cleaners []models.Cleaner
	if err := s.load(ctx, keyCleaners, &cleaners); err != nil {
		return nil, err
	}
	return cleaners, nil
}

// SaveJobs stores the full job list.
func (s *Store) SaveJobs(ctx context.Context, jobs []models.Job) error {
	return s.save(ctx, keyJobs, jobs)
}

// LoadJobs returns the materialized job list, or ErrMissing.
func (s *Store) LoadJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.load(ctx, keyJobs, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
