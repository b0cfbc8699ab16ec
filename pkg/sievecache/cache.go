// Package sievecache implements an in-memory, bounded-capacity key/value
// cache using the SIEVE eviction policy, in a single-threaded variant
// (Cache[K,V]) and a concurrent one (ConcurrentCache[K,V]).
//
// Capacity is fixed at construction and counted in entries, not bytes.
// There is no TTL, no persistence, and no iteration over contents.
//
// © 2025 sievecache authors. MIT License.
package sievecache

import (
	"context"

	"go.uber.org/zap"

	"github.com/Voskan/sievecache/internal/sieve"
)

type slot[K comparable, V any] struct {
	key      K
	val      V
	occupied bool
	read     bool
}

// Cache is a single-threaded, fixed-capacity SIEVE cache. It performs no
// synchronization of its own; wrap it in SynchronizeCache to share it
// across goroutines, or use ConcurrentCache for a design that doesn't
// serialize reads.
type Cache[K comparable, V any] struct {
	slots   []slot[K, V]
	index   map[K]int
	hand    int
	logger  *zap.Logger
	metrics metricsSink
	ejectCb EjectCallback[K, V]
	loaders *loaderGroup[K, V]
}

// New constructs a single-threaded cache. Default capacity is 100; override
// with WithCapacity. Returns ErrInvalidCapacity if capacity < 1.
func New[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	c := &Cache[K, V]{
		slots:   make([]slot[K, V], cfg.capacity),
		index:   make(map[K]int, cfg.capacity),
		logger:  cfg.logger,
		metrics: newMetricsSink(cfg.registry),
		ejectCb: cfg.ejectCb,
		loaders: newLoaderGroup[K, V](),
	}
	c.logger.Debug("sievecache: cache constructed", zap.Int("capacity", cfg.capacity))
	return c, nil
}

// Capacity returns the fixed slot count.
func (c *Cache[K, V]) Capacity() int { return len(c.slots) }

// Len returns the number of occupied slots.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// Contains reports whether k is currently cached, without affecting its
// read-flag.
func (c *Cache[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Get looks k up, marks its slot as read on a hit, and returns a copy of the
// stored value.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		c.metrics.incMiss()
		var zero V
		return zero, false
	}
	c.slots[i].read = true
	c.metrics.incHit()
	return c.slots[i].val, true
}

// Set inserts or overwrites k. An overwrite clears the slot's read-flag,
// treating it as a fresh insert. A fresh insert into a full cache evicts
// exactly one entry via SIEVE.
func (c *Cache[K, V]) Set(k K, v V) {
	if i, ok := c.index[k]; ok {
		c.slots[i].val = v
		c.slots[i].read = false
		return
	}

	var i int
	if len(c.index) < len(c.slots) {
		i = c.firstFreeSlot()
	} else {
		i = c.evict()
	}

	c.slots[i] = slot[K, V]{key: k, val: v, occupied: true, read: false}
	c.index[k] = i
	c.metrics.setLen(len(c.index))
	c.metrics.setHand(c.hand)
}

// GetOrLoad returns the cached value for k, or runs loader and caches its
// result on a miss. The loader runs through singleflight (see loader.go).
// SynchronizeCache holds its mutex across the whole call, loader included,
// so goroutines sharing this Cache through it are serialized rather than
// deduplicated: a later caller waits and then hits the stored value. A plain
// *Cache has no concurrent callers, and the dedup machinery is harmless in
// the single-goroutine case.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, k K, loader LoaderFunc[K, V]) (V, error) {
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

func (c *Cache[K, V]) firstFreeSlot() int {
	for i := range c.slots {
		if !c.slots[i].occupied {
			return i
		}
	}
	panic("sievecache: no free slot despite len(index) < capacity, index/occupancy invariant violated")
}

// evict runs the SIEVE scan and clears the victim's prior occupant, if any,
// from the index and the slot itself.
func (c *Cache[K, V]) evict() int {
	victim := sieve.Scan(len(c.slots), &c.hand,
		func(i int) bool { return c.slots[i].occupied },
		func(i int) bool { return c.slots[i].read },
		func(i int) { c.slots[i].read = false },
	)
	s := &c.slots[victim]
	if s.occupied {
		delete(c.index, s.key)
		if c.ejectCb != nil {
			c.ejectCb(s.key, s.val, ReasonCapacity)
		}
		c.metrics.incEvict()
		*s = slot[K, V]{}
	}
	return victim
}
