package goGrant

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goGrant/jwt"
	"github.com/MrEthical07/goGrant/store"
)

// Builder defines a public type used by goGrant APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	assertion string
	store     Store
	exchanger Exchanger
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithAssertion describes the withassertion operation and its observable behavior.
//
// WithAssertion may return an error when input validation, dependency calls, or security checks fail.
// WithAssertion does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAssertion(raw string) *Builder {
	b.assertion = raw
	return b
}

// WithStore describes the withstore operation and its observable behavior.
//
// WithStore may return an error when input validation, dependency calls, or security checks fail.
// WithStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStore(s Store) *Builder {
	b.store = s
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithExchanger describes the withexchanger operation and its observable behavior.
//
// WithExchanger may return an error when input validation, dependency calls, or security checks fail.
// WithExchanger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithExchanger(e Exchanger) *Builder {
	b.exchanger = e
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Strategy, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.assertion == "" {
		return nil, errors.New("assertion required")
	}
	if b.exchanger == nil {
		return nil, errors.New("exchanger required")
	}

	assertion, err := jwt.ParseAssertion(b.assertion)
	if err != nil {
		return nil, ErrAssertionMalformed
	}

	expiresAt, hasExpiry := assertion.ExpiresAt()
	if cfg.Assertion.RequireExpiry && !hasExpiry {
		return nil, ErrAssertionMissingExpiry
	}
	if cfg.Assertion.MaxLifetime > 0 && hasExpiry {
		if expiresAt.After(time.Now().Add(cfg.Assertion.MaxLifetime)) {
			return nil, errors.New("assertion lifetime exceeds Assertion MaxLifetime")
		}
	}

	authState := b.store
	if authState == nil {
		if b.redis != nil {
			authState = store.NewRedis(b.redis, cfg.Store.RedisPrefix, cfg.Store.OpTimeout)
		} else {
			authState = store.NewMemory()
		}
	}

	strategy := &Strategy{
		config:    cfg,
		assertion: assertion,
		store:     authState,
		exchanger: b.exchanger,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		now:       time.Now,
	}

	b.built = true

	return strategy, nil
}
