package sievecache

// shared.go provides a "one mutex around an exclusive-access cache"
// baseline: a Mutex-wrapped Cache[K,V] that satisfies the same operation
// set as ConcurrentCache[K,V]. It exists for tests that cross-check
// ConcurrentCache's behavior against a trivially-correct serialization of
// the single-threaded cache, not as a production path, since it serializes
// every operation, including reads, behind one lock.
//
// © 2025 sievecache authors. MIT License.

import (
	"context"
	"sync"
)

// SharedCache is the operation set both ConcurrentCache and
// SynchronizeCache implement.
type SharedCache[K comparable, V any] interface {
	Get(k K) (V, bool)
	Set(k K, v V)
	GetOrLoad(ctx context.Context, k K, loader LoaderFunc[K, V]) (V, error)
	Len() int
	Capacity() int
	Contains(k K) bool
}

// SynchronizeCache wraps a single-threaded Cache behind one sync.Mutex,
// promoting it to SharedCache without changing its eviction semantics.
type SynchronizeCache[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
}

// Synchronize wraps an existing Cache for safe concurrent use via a single
// global lock.
func Synchronize[K comparable, V any](c *Cache[K, V]) *SynchronizeCache[K, V] {
	return &SynchronizeCache[K, V]{cache: c}
}

func (s *SynchronizeCache[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(k)
}

func (s *SynchronizeCache[K, V]) Set(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(k, v)
}

func (s *SynchronizeCache[K, V]) GetOrLoad(ctx context.Context, k K, loader LoaderFunc[K, V]) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.GetOrLoad(ctx, k, loader)
}

func (s *SynchronizeCache[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

func (s *SynchronizeCache[K, V]) Capacity() int {
	return s.cache.Capacity() // fixed at construction; no lock needed
}

func (s *SynchronizeCache[K, V]) Contains(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Contains(k)
}

var (
	_ SharedCache[string, int] = (*SynchronizeCache[string, int])(nil)
	_ SharedCache[string, int] = (*ConcurrentCache[string, int])(nil)
)
