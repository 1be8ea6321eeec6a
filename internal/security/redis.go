package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix  = "gedo:lockout:"
	redisMaxRetries = 10
)

// RedisStore shares lockout state between instances. Updates use an
// optimistic WATCH/MULTI transaction and retry when the key changes
// underneath. Keys carry no TTL so the block counter survives.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL and verifies the connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get reads the state without a transaction.
func (s *RedisStore) Get(ctx context.Context, key string) (State, error) {
	var st State
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode lockout state: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Update(ctx context.Context, key string, fn func(*State) error) error {
	k := redisKeyPrefix + key

	txf := func(tx *redis.Tx) error {
		var st State
		raw, err := tx.Get(ctx, k).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(raw, &st); err != nil {
				return fmt.Errorf("decode lockout state: %w", err)
			}
		}

		if err := fn(&st); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if st.zero() {
				pipe.Del(ctx, k)
				return nil
			}
			data, err := json.Marshal(st)
			if err != nil {
				return err
			}
			pipe.Set(ctx, k, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrStoreContention
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
