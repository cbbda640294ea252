package ciphertoken

import (
	"errors"
	"time"

	"github.com/MrEthical07/ciphertoken/algorithm"
	"github.com/MrEthical07/ciphertoken/pool"
)

// Builder assembles an [Engine]. A Builder is single-use: Build can be called
// once.
type Builder struct {
	config Config
	pool   *pool.Pool

	built bool
}

// New returns a Builder initialized with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithSecret sets the raw key material string.
func (b *Builder) WithSecret(secret string) *Builder {
	b.config.Secret = secret
	return b
}

// WithAlgorithm sets the textual algorithm identifier (case-insensitive).
func (b *Builder) WithAlgorithm(alg string) *Builder {
	b.config.Algorithm = alg
	return b
}

// WithAccessTTL sets the access-token lifetime.
func (b *Builder) WithAccessTTL(ttl time.Duration) *Builder {
	b.config.AccessTTL = ttl
	return b
}

// WithRefreshTTL sets the refresh-token lifetime.
func (b *Builder) WithRefreshTTL(ttl time.Duration) *Builder {
	b.config.RefreshTTL = ttl
	return b
}

// WithWorkers sizes the engine-owned worker pool. Ignored when
// [Builder.WithWorkerPool] supplies one.
func (b *Builder) WithWorkers(n int) *Builder {
	b.config.Workers = n
	return b
}

// WithWorkerPool hands the engine a caller-owned pool. The engine will not
// close it; the caller keeps that responsibility and may share the pool
// across engines.
func (b *Builder) WithWorkerPool(p *pool.Pool) *Builder {
	b.pool = p
	return b
}

// WithMetricsEnabled toggles operation counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the signing-latency histogram. Requires
// metrics to be enabled.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and constructs the Engine. The secret's
// key material is deliberately not parsed here; bad PEM surfaces on first
// use, per call.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	alg, err := algorithm.Parse(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:  cfg,
		alg:     alg,
		metrics: NewMetrics(cfg.Metrics),
	}

	if b.pool != nil {
		engine.pool = b.pool
	} else {
		engine.pool = pool.New(cfg.Workers)
		engine.ownsPool = true
	}

	b.built = true

	return engine, nil
}

// NewEngine is the one-line constructor mirroring the four engine state
// fields: secret, algorithm, access TTL, refresh TTL. Everything else takes
// the defaults from [DefaultConfig].
func NewEngine(secret, alg string, accessTTL, refreshTTL time.Duration) (*Engine, error) {
	return New().
		WithSecret(secret).
		WithAlgorithm(alg).
		WithAccessTTL(accessTTL).
		WithRefreshTTL(refreshTTL).
		Build()
}
