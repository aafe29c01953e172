package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const tokenBlacklistPrefix = "auth:revoked:"

// TokenBlacklist records revoked access tokens by their jti until they expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist returns a Redis backed blacklist, or one that never
// reports a revocation when client is nil.
func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	if client == nil {
		return noopTokenBlacklist{}
	}
	return &redisTokenBlacklist{client: client}
}

func (b *redisTokenBlacklist) key(tokenID string) string {
	return tokenBlacklistPrefix + tokenID
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return b.client.Set(ctx, b.key(tokenID), "1", ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, b.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type noopTokenBlacklist struct{}

func (noopTokenBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopTokenBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
