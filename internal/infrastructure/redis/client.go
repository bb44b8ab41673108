package redis

import (
	"context"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = stderrors.New("key not found")

// Cache holds the customer-to-owner lookups consulted on every
// owner-scoped request. Entries are user ids, hence the int64-typed
// accessors; a miss returns ErrKeyNotFound and the caller falls back
// to postgres.
type Cache interface {
	GetInt64(ctx context.Context, key string) (int64, error)
	SetInt64(ctx context.Context, key string, value int64, expiration time.Duration) error
	Del(ctx context.Context, key string) error
	Close() error
}

// Client backs Cache with a redis connection.
type Client struct {
	client *redis.Client
}

func NewClient(addr string) *Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("failed to connect to redis owner cache", "addr", addr, "error", err)
		panic(err)
	}

	slog.Info("owner cache connected", "addr", addr)
	return &Client{client: client}
}

func (c *Client) GetInt64(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, ErrKeyNotFound
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (c *Client) SetInt64(ctx context.Context, key string, value int64, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
