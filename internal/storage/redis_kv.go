package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores keys as <namespace>:<key> strings without expiry.
type RedisKV struct {
	client    *redis.Client
	namespace string
}

func NewRedisKV(client *redis.Client, namespace string) (*RedisKV, error) {
	if client == nil {
		return nil, errors.New("storage: nil redis client")
	}
	if namespace == "" {
		return nil, errors.New("storage: namespace is required")
	}
	return &RedisKV{client: client, namespace: namespace}, nil
}

// OpenRedis connects to addr and checks the connection with PING.
func OpenRedis(ctx context.Context, addr string, db int, namespace string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisKV(client, namespace)
}

func (r *RedisKV) key(k string) string {
	return r.namespace + ":" + k
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, r.key(key)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
