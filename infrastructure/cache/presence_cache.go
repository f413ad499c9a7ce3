package cache

import (
	"context"

	"stream-engage/domain/repository"

	"github.com/redis/go-redis/v9"
)

// PresenceCache implements the active-viewer set store over Redis sets. Every
// operation maps to one atomic Redis command; membership changes for the same
// (set, member) pair are idempotent on the store side.
type PresenceCache struct {
	client *redis.Client
}

func NewPresenceCache(client *redis.Client) repository.IPresence {
	return &PresenceCache{client: client}
}

func (c *PresenceCache) AddMember(ctx context.Context, key, member string) error {
	return c.client.SAdd(ctx, key, member).Err()
}

func (c *PresenceCache) RemoveMember(ctx context.Context, key, member string) error {
	return c.client.SRem(ctx, key, member).Err()
}

func (c *PresenceCache) ListMembers(ctx context.Context, key string) ([]string, error) {
	return c.client.SMembers(ctx, key).Result()
}

func (c *PresenceCache) CountMembers(ctx context.Context, key string) (int64, error) {
	return c.client.SCard(ctx, key).Result()
}
