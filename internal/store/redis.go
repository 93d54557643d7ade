package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a KV backend over a Redis instance; each collection maps to
// one hash keyed by record id. Intended for shared dev environments,
// not for multi-writer consistency.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis at addr (host:port or a redis:// URL) and
// verifies the connection.
func NewRedis(addr string) (*Redis, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) GetRecord(ctx context.Context, collection, id string) ([]byte, bool, error) {
	b, err := r.client.HGet(ctx, collection, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) PutRecord(ctx context.Context, collection, id string, value []byte) error {
	return r.client.HSet(ctx, collection, id, value).Err()
}

func (r *Redis) DeleteRecord(ctx context.Context, collection, id string) error {
	return r.client.HDel(ctx, collection, id).Err()
}

func (r *Redis) GetAll(ctx context.Context, collection string) (map[string][]byte, error) {
	raw, err := r.client.HGetAll(ctx, collection).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(raw))
	for id, s := range raw {
		out[id] = []byte(s)
	}
	return out, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
