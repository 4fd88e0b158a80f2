package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/shared"
)

func newTestStore() (*MemoryStore, *shared.ManualClock) {
	clock := shared.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	return NewMemoryStore(clock), clock
}

func TestMemoryStore_IncrementBy(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	v, err := s.IncrementBy(ctx, "counter", 1, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = s.IncrementBy(ctx, "counter", 4, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	raw, ok, err := s.Get(ctx, "counter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5", raw)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	clock.Advance(59 * time.Second)

	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_IncrementKeepsOriginalExpiry(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	_, _ = s.IncrementBy(ctx, "c", 1, time.Hour)
	clock.Advance(30 * time.Minute)
	_, _ = s.IncrementBy(ctx, "c", 1, time.Hour)
	clock.Advance(30 * time.Minute)

	_, ok, _ := s.Get(ctx, "c")
	assert.False(t, ok, "ttl is set on creation only")
}

func TestMemoryStore_SetIfAbsent(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	ok, err := s.SetIfAbsent(ctx, "marker", "1", 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetIfAbsent(ctx, "marker", "1", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = s.SetIfAbsent(ctx, "short", "1", time.Second)
	assert.True(t, ok)
	clock.Advance(time.Second)
	ok, _ = s.SetIfAbsent(ctx, "short", "1", time.Second)
	assert.True(t, ok, "expired markers can be set again")
}

func TestMemoryStore_ResetAndSweep(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	_ = s.Set(ctx, "a", "1", time.Minute)
	_ = s.Set(ctx, "b", "1", 0)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_NonNumericIncrement(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_ = s.Set(ctx, "word", "hello", 0)
	_, err := s.IncrementBy(ctx, "word", 1, 0)
	assert.Error(t, err)
}

func TestMemoryStore_IncrementIfBelow(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		v, ok, err := s.IncrementIfBelow(ctx, "gate", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, v)
	}

	v, ok, err := s.IncrementIfBelow(ctx, "gate", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(3), v)

	clock.Advance(time.Hour)
	v, ok, err = s.IncrementIfBelow(ctx, "gate", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "expired counters start over")
	assert.Equal(t, int64(1), v)
}

func TestMemoryStore_IncrementIfBelowConcurrent(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		passed int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.IncrementIfBelow(ctx, "gate", 3, time.Hour)
			if err == nil && ok {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, passed)
	raw, _, _ := s.Get(ctx, "gate")
	assert.Equal(t, "3", raw)
}

func TestMemoryStore_Delete(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", "v", 0)
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "throttle:1:2024-05-01", Key("throttle", "1", "2024-05-01"))
	assert.NotEqual(t, Key("throttle", "1", "12"), Key("throttle", "11", "2"))
}
