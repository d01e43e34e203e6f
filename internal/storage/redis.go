package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pfrederiksen/tournament-monitor/internal/display"
)

// DefaultRedisKey is the key the record is stored under.
const DefaultRedisKey = "tournament:display"

// RedisSink stores the record as a JSON string under a single key.
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSink connects lazily to the server named by a redis:// URL.
func NewRedisSink(rawURL, key string) (*RedisSink, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: redis.NewClient(opts), key: key}, nil
}

// Name returns "redis:" plus the server address and key.
func (s *RedisSink) Name() string {
	return fmt.Sprintf("redis:%s/%s", s.client.Options().Addr, s.key)
}

// Save stores the record without expiry.
func (s *RedisSink) Save(ctx context.Context, state display.PersistedState) error {
	data, err := state.Encode()
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", s.key, err)
	}
	return nil
}

// Load reads the record back. A missing key is ErrNoState.
func (s *RedisSink) Load(ctx context.Context) (*display.PersistedState, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("getting %s: %w", s.key, err)
	}
	state, err := display.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.key, err)
	}
	return state, nil
}

// Close releases the connection pool.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
