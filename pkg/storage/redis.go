package storage

import (
	"context"
	"errors"
	"fmt"

	pkgredis "github.com/storefrontlabs/widget/pkg/redis"
)

// RedisStore keeps the cart slot in Redis under a namespaced key. Values
// never expire; the cart lives for as long as the session keeps it.
type RedisStore struct {
	client *pkgredis.Client
}

func NewRedisStore(client *pkgredis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(key))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.CartKey(key), value, 0)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
