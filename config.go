package goGrant

import (
	"errors"
	"time"
)

// Config defines a public type used by goGrant APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token     TokenConfig
	Assertion AssertionConfig
	Store     StoreConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goGrant APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// RefreshMargin treats the cached token as expired this long before
	// its actual expiration, so callers never receive a token about to
	// lapse mid-call. Zero keeps strict expiry semantics.
	RefreshMargin time.Duration
}

/*
====================================
ASSERTION CONFIG
====================================
*/

// AssertionConfig defines a public type used by goGrant APIs.
//
// AssertionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AssertionConfig struct {
	// RequireExpiry rejects assertions without an exp claim at Build
	// time. An assertion without exp never reaches the permanently
	// unauthenticated state on its own.
	RequireExpiry bool
	// MaxLifetime rejects assertions at Build time whose embedded expiry
	// lies further in the future than this. Zero disables the check.
	MaxLifetime time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by goGrant APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	RedisPrefix string
	OpTimeout   time.Duration
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by goGrant APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goGrant APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			RefreshMargin: 0,
		},
		Assertion: AssertionConfig{
			RequireExpiry: true,
			MaxLifetime:   0,
		},
		Store: StoreConfig{
			RedisPrefix: "gg",
			OpTimeout:   2 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if c.Token.RefreshMargin < 0 {
		return errors.New("Token RefreshMargin must be >= 0")
	}
	if c.Token.RefreshMargin > time.Hour {
		return errors.New("Token RefreshMargin must be <= 1h")
	}

	// Assertion
	if c.Assertion.MaxLifetime < 0 {
		return errors.New("Assertion MaxLifetime must be >= 0")
	}

	// Store
	if c.Store.OpTimeout <= 0 {
		return errors.New("Store OpTimeout must be > 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	return nil
}
