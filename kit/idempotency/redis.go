package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Processing keys expire quickly so a crashed worker cannot wedge a
	// key forever; completed entries live long enough for client retries.
	processingExpiry = 15 * time.Second
	completedExpiry  = 24 * time.Hour
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("checkout:idem:%s", key)
}

func (s *RedisStore) Begin(ctx context.Context, key string) (*Entry, error) {
	k := s.key(key)

	raw, err := s.client.Get(ctx, k).Result()
	if err == nil {
		var entry Entry
		if uerr := json.Unmarshal([]byte(raw), &entry); uerr == nil && entry.State == StateComplete {
			return &entry, nil
		}
		return nil, ErrInProgress
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis GET: %w", err)
	}

	marker, _ := json.Marshal(Entry{State: StateProcessing, CreatedAt: time.Now().UTC()})
	set, err := s.client.SetNX(ctx, k, marker, processingExpiry).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SETNX: %w", err)
	}
	if !set {
		return nil, ErrInProgress
	}
	return nil, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, statusCode int, response []byte) error {
	entry, err := json.Marshal(Entry{
		State:      StateComplete,
		StatusCode: statusCode,
		Response:   response,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), entry, completedExpiry).Err()
}

func (s *RedisStore) Abandon(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
