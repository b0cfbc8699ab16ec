package sievecache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsZeroCapacity(t *testing.T) {
	_, err := New[string, int](WithCapacity[string, int](0))
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestNewDefaultsCapacityTo100(t *testing.T) {
	c, err := New[string, int]()
	require.NoError(t, err)
	require.Equal(t, 100, c.Capacity())
}

func TestSetThenGetAgreement(t *testing.T) {
	c, err := New[string, int](WithCapacity[string, int](10))
	require.NoError(t, err)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestOverwrite(t *testing.T) {
	c, _ := New[string, int](WithCapacity[string, int](10))
	c.Set("k", 1)
	c.Set("k", 2)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, c.Len())
}

func TestNoPhantomKeys(t *testing.T) {
	c, _ := New[string, int](WithCapacity[string, int](10))
	c.Set("a", 1)
	_, ok := c.Get("never-set")
	require.False(t, ok)
}

func TestBoundedOccupancy(t *testing.T) {
	c, _ := New[int, int](WithCapacity[int, int](10))
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	require.LessOrEqual(t, c.Len(), c.Capacity())
}

func TestGetTwiceIsIdempotent(t *testing.T) {
	c, _ := New[string, int](WithCapacity[string, int](10))
	c.Set("a", 42)
	v1, ok1 := c.Get("a")
	v2, ok2 := c.Get("a")
	require.Equal(t, v1, v2)
	require.Equal(t, ok1, ok2)
}

func TestFillingToExactlyCapacityRetainsAllKeys(t *testing.T) {
	const cap = 50
	c, _ := New[int, int](WithCapacity[int, int](cap))
	for i := 0; i < cap; i++ {
		c.Set(i, i)
	}
	require.Equal(t, cap, c.Len())
	for i := 0; i < cap; i++ {
		v, ok := c.Get(i)
		require.True(t, ok, "key %d should still be present", i)
		require.Equal(t, i, v)
	}
}

func TestInsertingOneBeyondCapacityEvictsExactlyOne(t *testing.T) {
	const cap = 100
	c, _ := New[int, int](WithCapacity[int, int](cap))
	for i := 0; i < cap; i++ {
		c.Set(i, i)
	}
	c.Set(cap, cap)
	require.Equal(t, cap, c.Len())
}

// S1 basic
func TestScenarioS1Basic(t *testing.T) {
	c, _ := New[string, int]()
	c.Set("test", 32)
	v, ok := c.Get("test")
	require.True(t, ok)
	require.Equal(t, 32, v)
}

// S2 independence
func TestScenarioS2Independence(t *testing.T) {
	c, _ := New[string, int]()
	c.Set("a", 0)
	c.Set("b", 1)
	c.Set("c", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 0, v)
}

// S3 overwrite
func TestScenarioS3Overwrite(t *testing.T) {
	c, _ := New[string, int]()
	c.Set("a", 0)
	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

// S4 first-victim eviction
func TestScenarioS4FirstVictimEviction(t *testing.T) {
	c, _ := New[int, int]()
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	c.Set(100, 100)

	_, ok := c.Get(0)
	require.False(t, ok)
	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

// S5 read-flag protection
func TestScenarioS5ReadFlagProtection(t *testing.T) {
	c, _ := New[int, int]()
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	_, _ = c.Get(0)
	_, _ = c.Get(1)
	c.Set(100, 100)

	v, ok := c.Get(0)
	require.True(t, ok)
	require.Equal(t, 0, v)

	v, ok = c.Get(1)
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Get(2)
	require.False(t, ok)

	v, ok = c.Get(100)
	require.True(t, ok)
	require.Equal(t, 100, v)
}

// S6 minimal eviction
func TestScenarioS6MinimalEviction(t *testing.T) {
	c, _ := New[int, int]()
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	_, _ = c.Get(0)
	_, _ = c.Get(1)
	c.Set(100, 100)

	v, ok := c.Get(3)
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestGetOrLoadCachesLoaderResult(t *testing.T) {
	c, _ := New[string, int](WithCapacity[string, int](10))
	calls := 0
	loader := func(_ context.Context, k string) (int, error) {
		calls++
		return len(k), nil
	}

	v, err := c.GetOrLoad(context.Background(), "hello", loader)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	v, err = c.GetOrLoad(context.Background(), "hello", loader)
	require.NoError(t, err)
	require.Equal(t, 5, v)
	require.Equal(t, 1, calls, "second call should hit the cache, not the loader")
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	c, _ := New[string, int](WithCapacity[string, int](10))
	wantErr := errors.New("boom")
	_, err := c.GetOrLoad(context.Background(), "x", func(_ context.Context, _ string) (int, error) {
		return 0, wantErr
	})
	require.ErrorIs(t, err, wantErr)
	require.False(t, c.Contains("x"))
}

func TestEjectCallbackInvokedOnCapacityEviction(t *testing.T) {
	var evicted []int
	c, _ := New[int, int](
		WithCapacity[int, int](2),
		WithEjectCallback[int, int](func(k, v int, reason EjectReason) {
			require.Equal(t, ReasonCapacity, reason)
			evicted = append(evicted, k)
		}),
	)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)
	require.Equal(t, []int{1}, evicted)
}
