package sievecache

// config.go defines the internal configuration object and the functional
// options applied to it, following the teacher's pkg/config.go pattern:
// fields are only ever set through Option[K,V] so the struct itself stays
// unexported and forward-compatible.
//
// © 2025 sievecache authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultCapacity = 100

// EjectReason explains why an entry was evicted. SIEVE has exactly one
// eviction trigger (capacity pressure during Set), unlike the teacher's
// CLOCK-Pro which also tracked generation-TTL ghosts; the type is kept as a
// single-value enum for API symmetry with the teacher and to leave room for
// a future second reason without breaking callers.
type EjectReason uint8

// ReasonCapacity is the only EjectReason this cache currently produces.
const ReasonCapacity EjectReason = 1

// EjectCallback is invoked synchronously, from within Set, whenever SIEVE
// selects an occupied slot as victim. It must not call back into the same
// cache (same contract as the teacher's WithEjectCallback) and should be
// cheap: it runs in the caller's goroutine, holding the evicted slot's
// write lock in the concurrent cache.
type EjectCallback[K comparable, V any] func(key K, val V, reason EjectReason)

// Option configures a Cache or ConcurrentCache at construction time.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	capacity int
	registry *prometheus.Registry
	logger   *zap.Logger
	ejectCb  EjectCallback[K, V]
}

func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		capacity: defaultCapacity,
		logger:   zap.NewNop(),
	}
}

// WithCapacity sets the cache's fixed slot count. Default 100.
func WithCapacity[K comparable, V any](n int) Option[K, V] {
	return func(c *config[K, V]) {
		c.capacity = n
	}
}

// WithMetrics enables Prometheus metrics collection. Passing nil leaves
// metrics disabled (the default) and the hot path pays nothing for them.
func WithMetrics[K comparable, V any](reg *prometheus.Registry) Option[K, V] {
	return func(c *config[K, V]) {
		c.registry = reg
	}
}

// WithLogger plugs an external zap.Logger. The cache never logs on the
// Get/Set hot path; only construction is logged.
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEjectCallback registers a function invoked whenever SIEVE evicts an
// occupied slot to make room for a new key.
func WithEjectCallback[K comparable, V any](cb EjectCallback[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.ejectCb = cb
	}
}

func applyOptions[K comparable, V any](opts []Option[K, V]) (*config[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return cfg, nil
}
