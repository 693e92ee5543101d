package goGrant

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative refresh margin", func(c *Config) { c.Token.RefreshMargin = -time.Second }},
		{"excessive refresh margin", func(c *Config) { c.Token.RefreshMargin = 2 * time.Hour }},
		{"negative max lifetime", func(c *Config) { c.Assertion.MaxLifetime = -time.Hour }},
		{"zero op timeout", func(c *Config) { c.Store.OpTimeout = 0 }},
		{"audit enabled without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
