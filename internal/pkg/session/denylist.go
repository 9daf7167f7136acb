package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hotel:revoked:"

// Denylist records revoked token ids until the token would have expired anyway.
type Denylist struct {
	client *redis.Client
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewDenylist connects to redis and checks the connection with PING.
func NewDenylist(ctx context.Context, opts Options) (*Denylist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Denylist{client: client}, nil
}

// NewDenylistFromClient wraps an existing client.
func NewDenylistFromClient(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke stores jti until expiresAt. Already-expired tokens are ignored.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	err := d.client.Get(ctx, keyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}

func (d *Denylist) Close() error {
	return d.client.Close()
}
