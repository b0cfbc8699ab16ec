package sievecache

// loader.go implements the singleflight-based de-duplication layer behind
// GetOrLoad, adapted from the teacher's pkg/loader.go + pkg/loaderfunc.go:
// when many goroutines miss on the same key at once, only one of them runs
// loader; the rest wait for its result.
//
// Like the teacher, the dedup key fed to singleflight is a hash of K rather
// than K itself (singleflight.Group.Do wants a string). A hash collision
// between two distinct keys would make an unlucky caller see another key's
// loaded value; at 64 bits this is the same accepted risk the teacher takes
// for its own loader, not a property this cache promises to defend against.
// GetOrLoad is convenience glue layered on top of Get/Set, not part of the
// core eviction contract.
//
// © 2025 sievecache authors. MIT License.

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/Voskan/sievecache/internal/indexmap"
)

// LoaderFunc is invoked by GetOrLoad on a miss. It must not call Get, Set,
// or GetOrLoad on the same cache instance it is serving (re-entrancy is
// undefined behavior), and the same LoaderFunc value may be called
// concurrently for different keys.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

type loaderGroup[K comparable, V any] struct {
	g singleflight.Group
}

func newLoaderGroup[K comparable, V any]() *loaderGroup[K, V] {
	return &loaderGroup[K, V]{}
}

func (lg *loaderGroup[K, V]) load(ctx context.Context, key K, fn LoaderFunc[K, V]) (val V, err error, shared bool) {
	sfKey := strconv.FormatUint(indexmap.HashKey(key), 16)
	res, err, shared := lg.g.Do(sfKey, func() (any, error) {
		return fn(ctx, key)
	})
	if ctx.Err() != nil {
		var zero V
		return zero, ctx.Err(), shared
	}
	if err != nil {
		var zero V
		return zero, err, shared
	}
	return res.(V), nil, shared
}
