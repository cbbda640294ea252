package ciphertoken

import (
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/ciphertoken/algorithm"
)

// Config holds the engine's immutable construction parameters. Instances are
// configured before [Builder.Build] and treated as read-only afterwards.
type Config struct {
	// Secret is the raw key material string. Its contents depend on the
	// algorithm family: base64-encoded random bytes for the HMAC family,
	// PEM text for the asymmetric families. It is parsed lazily per call,
	// never at Build time.
	Secret string
	// Algorithm is the textual algorithm identifier, case-insensitive.
	// One of HS256, HS384, HS512, RS256, RS384, RS512, ES256, ES384,
	// PS256, PS384, PS512, EdDSA.
	Algorithm string
	// AccessTTL is the lifetime of tokens issued by Access. No floor is
	// enforced; zero means tokens are born expired.
	AccessTTL time.Duration
	// RefreshTTL is the lifetime of tokens issued by Refresh.
	RefreshTTL time.Duration
	// Workers sizes the engine-owned worker pool behind the ...Context
	// methods. Zero or less defaults to GOMAXPROCS. Ignored when a pool is
	// supplied through [Builder.WithWorkerPool].
	Workers int
	// Metrics configures the operation counters.
	Metrics MetricsConfig
}

// MetricsConfig toggles metric collection. Disabled metrics cost a single
// branch per operation.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULTS + VALIDATION
====================================
*/

// DefaultConfig returns the baseline configuration: HS256, 15-minute access
// tokens, 7-day refresh tokens, GOMAXPROCS workers, metrics disabled.
// A Secret must still be supplied.
func DefaultConfig() Config {
	return Config{
		Algorithm:  algorithm.HS256.Name(),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// Validate checks the configuration without touching key material; an
// unparseable secret surfaces later, on the first operation that needs it.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("secret required")
	}
	if _, err := algorithm.Parse(c.Algorithm); err != nil {
		return err
	}
	if c.AccessTTL < 0 {
		return errors.New("negative AccessTTL")
	}
	if c.RefreshTTL < 0 {
		return errors.New("negative RefreshTTL")
	}
	return nil
}
