package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder is a Redis-based implementation of Recorder.
// Each run is a list of JSON-encoded turns; run IDs are kept in a set.
type RedisRecorder struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRecorder creates a new Redis-based recorder
func NewRedisRecorder(config StoreConfig) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
		PoolSize: config.Redis.PoolSize,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	keyPrefix := config.Redis.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "roundtable:"
	}

	return &RedisRecorder{
		client:    client,
		keyPrefix: keyPrefix + "turns:",
		ttl:       config.Redis.TTL,
	}, nil
}

// Close closes the store
func (s *RedisRecorder) Close() error {
	return s.client.Close()
}

// Ping checks if the store is healthy
func (s *RedisRecorder) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// runKey returns the Redis key for a run's turn list
func (s *RedisRecorder) runKey(runID string) string {
	return s.keyPrefix + "run:" + runID
}

// runsKey returns the Redis key for the run ID set
func (s *RedisRecorder) runsKey() string {
	return s.keyPrefix + "runs"
}

// Record appends a turn to its run list
func (s *RedisRecorder) Record(ctx context.Context, rec *TurnRecord) error {
	if err := prepare(rec); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.runKey(rec.RunID), data)
	pipe.SAdd(ctx, s.runsKey(), rec.RunID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.runKey(rec.RunID), s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Turns returns a run's turns ordered by seq
func (s *RedisRecorder) Turns(ctx context.Context, runID string) ([]*TurnRecord, error) {
	raw, err := s.client.LRange(ctx, s.runKey(runID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}

	out := make([]*TurnRecord, 0, len(raw))
	for _, item := range raw {
		var rec TurnRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		out = append(out, &rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Runs lists recorded run IDs
func (s *RedisRecorder) Runs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.runsKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
