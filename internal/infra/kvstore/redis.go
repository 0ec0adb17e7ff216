// internal/infra/kvstore/redis.go
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"business_notification_service/internal/domain/schedule"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	jobListKey       = "notifier:scheduled_jobs"
	ruleOverridesKey = "notifier:rule_overrides"
)

// NewRedisClient creates the client for the local durable key-value store.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// RedisJobStore persists the scheduled-job list as one JSON document.
// Writes are serialized through a mutex: the list is read-modify-written as
// a whole, and concurrent writers would otherwise race last-writer-wins.
type RedisJobStore struct {
	client *redis.Client
	logger *logrus.Logger
	mu     sync.Mutex
}

func NewRedisJobStore(client *redis.Client, logger *logrus.Logger) *RedisJobStore {
	return &RedisJobStore{client: client, logger: logger}
}

// Load returns the persisted job list. A missing key or malformed document
// loads as an empty list; a pile of unreadable state must not wedge every
// subsequent tick.
func (s *RedisJobStore) Load(ctx context.Context) ([]schedule.Job, error) {
	raw, err := s.client.Get(ctx, jobListKey).Result()
	if err == redis.Nil {
		return []schedule.Job{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading scheduled jobs: %w", err)
	}

	var jobs []schedule.Job
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		s.logger.WithError(err).Warn("Stored job list is malformed, starting from an empty list")
		return []schedule.Job{}, nil
	}
	return jobs, nil
}

func (s *RedisJobStore) Save(ctx context.Context, jobs []schedule.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("error encoding scheduled jobs: %w", err)
	}
	if err := s.client.Set(ctx, jobListKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("error saving scheduled jobs: %w", err)
	}
	return nil
}

// RedisRuleOverrideStore persists rule enabled/disabled overrides so
// runtime toggles survive a restart.
type RedisRuleOverrideStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisRuleOverrideStore(client *redis.Client, logger *logrus.Logger) *RedisRuleOverrideStore {
	return &RedisRuleOverrideStore{client: client, logger: logger}
}

// Load returns the override map keyed by "category/type". Missing or
// malformed state loads as empty, leaving the default catalog untouched.
func (s *RedisRuleOverrideStore) Load(ctx context.Context) (map[string]bool, error) {
	raw, err := s.client.Get(ctx, ruleOverridesKey).Result()
	if err == redis.Nil {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading rule overrides: %w", err)
	}

	overrides := map[string]bool{}
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		s.logger.WithError(err).Warn("Stored rule overrides are malformed, ignoring them")
		return map[string]bool{}, nil
	}
	return overrides, nil
}

func (s *RedisRuleOverrideStore) Save(ctx context.Context, overrides map[string]bool) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("error encoding rule overrides: %w", err)
	}
	if err := s.client.Set(ctx, ruleOverridesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("error saving rule overrides: %w", err)
	}
	return nil
}
