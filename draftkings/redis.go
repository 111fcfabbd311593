package draftkings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps lines in Redis so several API processes share one fetch.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore parses a redis:// URL.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), prefix: "mlbprops:lines:"}, nil
}

func (s *RedisStore) key(board Board) string {
	return s.prefix + string(board)
}

func (s *RedisStore) Load(ctx context.Context, board Board) (*Lines, bool, error) {
	data, err := s.client.Get(ctx, s.key(board)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var lines Lines
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, false, fmt.Errorf("unmarshaling lines: %w", err)
	}
	return &lines, true, nil
}

func (s *RedisStore) Save(ctx context.Context, lines *Lines, ttl time.Duration) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshaling lines: %w", err)
	}
	return s.client.Set(ctx, s.key(lines.Board), data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, board Board) error {
	return s.client.Del(ctx, s.key(board)).Err()
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
