package sievecache

// concurrent.go implements ConcurrentCache[K,V]: the same SIEVE contract as
// Cache[K,V], safe for concurrent use by many goroutines, designed so that
// Gets on disjoint keys do not contend beyond the shared Index probe.
//
// Each slot carries its own sync.RWMutex guarding (key, val) and a pair of
// relaxed atomic.Bool flags (occupied, read) that the eviction scan and the
// hot Get path touch without taking the slot lock at all. This generalizes
// the RLock-optimistic read path a sharded map uses to per-slot rather than
// per-shard granularity.
//
// Victim selection (the SIEVE scan) is serialized across all writers by a
// single evictMu, held from scan through slot install. This is stronger
// serialization than strictly necessary (only writers touching the same
// victim need to agree), chosen because writer-to-writer fairness is not a
// guarantee this cache makes, and it keeps the conditional-index-removal
// reasoning simple without weakening any reader-facing guarantee: evictMu is
// never touched by Get.
//
// © 2025 sievecache authors. MIT License.

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Voskan/sievecache/internal/indexmap"
	"github.com/Voskan/sievecache/internal/sieve"
)

type concurrentSlot[K comparable, V any] struct {
	mu       sync.RWMutex
	key      K
	val      V
	occupied atomic.Bool
	read     atomic.Bool
}

// ConcurrentCache is a fixed-capacity, concurrency-safe SIEVE cache.
type ConcurrentCache[K comparable, V any] struct {
	slots   []concurrentSlot[K, V]
	index   *indexmap.Map[K]
	evictMu sync.Mutex
	hand    int

	logger  *zap.Logger
	metrics metricsSink
	ejectCb EjectCallback[K, V]
	loaders *loaderGroup[K, V]
}

// NewConcurrent constructs a concurrent cache. Default capacity is 100;
// override with WithCapacity. Returns ErrInvalidCapacity if capacity < 1.
func NewConcurrent[K comparable, V any](opts ...Option[K, V]) (*ConcurrentCache[K, V], error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	c := &ConcurrentCache[K, V]{
		slots:   make([]concurrentSlot[K, V], cfg.capacity),
		index:   indexmap.New[K](cfg.capacity),
		logger:  cfg.logger,
		metrics: newMetricsSink(cfg.registry),
		ejectCb: cfg.ejectCb,
		loaders: newLoaderGroup[K, V](),
	}
	c.logger.Debug("sievecache: concurrent cache constructed", zap.Int("capacity", cfg.capacity))
	return c, nil
}

// Capacity returns the fixed slot count.
func (c *ConcurrentCache[K, V]) Capacity() int { return len(c.slots) }

// Len returns the approximate number of occupied slots (consistent at any
// single point the Index was not being mutated; safe to call concurrently).
func (c *ConcurrentCache[K, V]) Len() int { return c.index.Len() }

// Contains reports whether k is currently cached, without affecting its
// read-flag or taking any slot lock.
func (c *ConcurrentCache[K, V]) Contains(k K) bool {
	_, ok := c.index.Get(k)
	return ok
}

// Get looks k up via the Index, marks the candidate slot's read-flag, then
// rechecks the slot's actual key under its lock before returning a value.
// This recheck is required because the Index probe, the lock acquisition,
// and the key comparison are not atomic as a group.
func (c *ConcurrentCache[K, V]) Get(k K) (V, bool) {
	i, ok := c.index.Get(k)
	if !ok {
		c.metrics.incMiss()
		var zero V
		return zero, false
	}

	s := &c.slots[i]
	s.read.Store(true) // relaxed hint; never gates correctness

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.occupied.Load() && s.key == k {
		c.metrics.incHit()
		return s.val, true
	}
	// The slot was reused by a concurrent writer between the Index probe
	// and this lock. Never hand back another key's value.
	c.metrics.incMiss()
	var zero V
	return zero, false
}

// Set inserts or overwrites k. An already-present key is updated in place
// rather than evicted and reinserted, leaving its slot's position relative
// to the hand untouched; otherwise a victim is selected via SIEVE and
// evicted.
func (c *ConcurrentCache[K, V]) Set(k K, v V) {
	if i, ok := c.index.Get(k); ok {
		s := &c.slots[i]
		s.mu.Lock()
		if s.occupied.Load() && s.key == k {
			s.val = v
			s.read.Store(false)
			s.mu.Unlock()
			return
		}
		// Raced away: the slot this key used to occupy has since been
		// reused by the eviction scan. Fall through to the slow path.
		s.mu.Unlock()
	}
	c.setSlow(k, v)
}

// setSlow selects a victim under the eviction lock and installs (k, v) into
// it, evicting whatever the victim previously held.
func (c *ConcurrentCache[K, V]) setSlow(k K, v V) {
	c.evictMu.Lock()
	defer c.evictMu.Unlock()

	victim := sieve.Scan(len(c.slots), &c.hand,
		func(i int) bool { return c.slots[i].occupied.Load() },
		func(i int) bool { return c.slots[i].read.Load() },
		func(i int) { c.slots[i].read.Store(false) },
	)

	s := &c.slots[victim]
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.occupied.Load() {
		oldKey, oldVal := s.key, s.val
		// Conditional: only remove if still current. Two Sets of the same
		// absent key can both miss the Index and reach setSlow one after
		// the other; the later one remaps the key to its own slot, leaving
		// this slot with a stale copy whose eviction must not drop the
		// newer mapping.
		c.index.DeleteIf(oldKey, victim)
		if c.ejectCb != nil {
			c.ejectCb(oldKey, oldVal, ReasonCapacity)
		}
		c.metrics.incEvict()
	}

	s.key = k
	s.val = v
	s.read.Store(false)
	s.occupied.Store(true)
	c.index.Set(k, victim)

	c.metrics.setLen(c.index.Len())
	c.metrics.setHand(c.hand)
}

// GetOrLoad returns the cached value for k, or runs loader and caches its
// result on a miss, deduplicating concurrent misses for the same key via
// singleflight (loader.go).
func (c *ConcurrentCache[K, V]) GetOrLoad(ctx context.Context, k K, loader LoaderFunc[K, V]) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err, _ := c.loaders.load(ctx, k, loader)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(k, v)
	return v, nil
}
