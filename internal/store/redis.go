package store

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redislib.Client
	prefix string
}

// NewRedis returns a Store backed by Redis, for deployments where local
// state should be shared across instances. Keys are namespaced with prefix.
func NewRedis(client *redislib.Client, prefix string) Store {
	if prefix == "" {
		prefix = "state:"
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *redisStore) Len(ctx context.Context) (int, error) {
	keys, err := s.client.Keys(ctx, s.prefix+"*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *redisStore) key(key string) string {
	return fmt.Sprintf("%s%s", s.prefix, key)
}
