package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewCache connects the Redis client backing the presence sets. The client is
// constructed once at startup and injected; there is no package-level handle.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
