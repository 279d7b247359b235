package job_status_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flyer-ingest/domain"

	"github.com/redis/go-redis/v9"
)

const (
	jobKeyPrefix    = "job:"
	latestKeyFormat = "job:zip:%s:latest"
)

// RedisStore shares job status across replicas. Records expire after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, status *domain.JobStatus) error {
	if status == nil {
		return nil
	}

	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal job status: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, jobKeyPrefix+status.ID, payload, s.ttl)
	pipe.Set(ctx, latestKey(status.ZipCode), status.ID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save job status %s: %w", status.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.JobStatus, error) {
	payload, err := s.client.Get(ctx, jobKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job status %s: %w", id, err)
	}

	var status domain.JobStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("decode job status %s: %w", id, err)
	}
	return &status, nil
}

func (s *RedisStore) LatestForZip(ctx context.Context, zipCode string) (*domain.JobStatus, error) {
	id, err := s.client.Get(ctx, latestKey(zipCode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest job for %s: %w", zipCode, err)
	}
	return s.Get(ctx, id)
}

func latestKey(zipCode string) string {
	return fmt.Sprintf(latestKeyFormat, zipCode)
}
