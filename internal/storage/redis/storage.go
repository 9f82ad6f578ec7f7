package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/stonegame/internal/model"
	"github.com/mcoot/stonegame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResult(ctx context.Context, result *model.MatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := resultsKey()

	// Push, trim and refresh expiry atomically
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	if s.cfg.MaxResults > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.cfg.MaxResults-1))
	}
	if s.cfg.ResultsTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.ResultsTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListResults(ctx context.Context, limit int) ([]*model.MatchResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	values, err := s.client.LRange(ctx, resultsKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.MatchResult, 0, len(values))
	for _, v := range values {
		var r model.MatchResult
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, &r)
	}
	return results, nil
}
