package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "gg"
	defaultOpTimeout   = 2 * time.Second
)

// Redis defines a public type used by goGrant APIs.
//
// Redis instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// The strategy's store contract is synchronous and error-free, so the Redis
// backend degrades instead of failing: a read error behaves as "no cached
// token" (forcing a refresh), and a write error is logged best-effort. The
// key carries a TTL equal to the token's remaining lifetime, so Redis itself
// never serves a token past its expiry.
type Redis struct {
	client    *redis.Client
	key       string
	opTimeout time.Duration
}

// NewRedis describes the newredis operation and its observable behavior.
//
// NewRedis may return an error when input validation, dependency calls, or security checks fail.
// NewRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedis(client *redis.Client, prefix string, opTimeout time.Duration) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}

	return &Redis{
		client:    client,
		key:       prefix + ":auth_state",
		opTimeout: opTimeout,
	}
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Get() *Token {
	if r == nil || r.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	blob, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Print("goGrant: redis auth state read failed")
		}
		return nil
	}

	var token Token
	if err := json.Unmarshal(blob, &token); err != nil {
		// Corrupt state is unusable; force a refresh on the next request.
		log.Print("goGrant: redis auth state corrupt")
		return nil
	}

	return &token
}

// Set describes the set operation and its observable behavior.
//
// Set may return an error when input validation, dependency calls, or security checks fail.
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Set(t *Token) {
	if r == nil || r.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	if t == nil {
		if err := r.client.Del(ctx, r.key).Err(); err != nil {
			log.Print("goGrant: redis auth state clear failed")
		}
		return
	}

	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		// An already-expired token is indistinguishable from an absent
		// one on the next read; store nothing.
		if err := r.client.Del(ctx, r.key).Err(); err != nil {
			log.Print("goGrant: redis auth state clear failed")
		}
		return
	}

	blob, err := json.Marshal(t)
	if err != nil {
		log.Print("goGrant: redis auth state encode failed")
		return
	}

	if err := r.client.Set(ctx, r.key, blob, ttl).Err(); err != nil {
		log.Print("goGrant: redis auth state write failed")
	}
}
