package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestMemory(t *testing.T, opts ...MemoryOption) (*Memory, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 5, 21, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(0, append([]MemoryOption{WithClock(clk.Now)}, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m, clk
}

func TestSetGetAndExpire(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestMemory(t)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expected no value initially")

	require.NoError(t, m.Set(ctx, "k", "hello", 50*time.Millisecond))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	clk.Advance(50 * time.Millisecond)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expected expired value to be gone")
	assert.Equal(t, 0, m.Len())
}

func TestSetWithoutTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestMemory(t)

	require.NoError(t, m.Set(ctx, "k", "v", 0))
	clk.Advance(24 * 365 * time.Hour)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t)

	require.NoError(t, m.Set(ctx, "k", "42", time.Second))
	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)

	assert.NoError(t, m.Delete(ctx, "never-set"))
}

func TestOverwriteResetsTTL(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestMemory(t)

	require.NoError(t, m.Set(ctx, "k", "a", time.Second))
	clk.Advance(900 * time.Millisecond)
	require.NoError(t, m.Set(ctx, "k", "b", time.Second))
	clk.Advance(900 * time.Millisecond)

	v, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestLRUEviction(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, WithMaxItems(2))

	require.NoError(t, m.Set(ctx, "a", "1", 0))
	require.NoError(t, m.Set(ctx, "b", "2", 0))
	_, _, _ = m.Get(ctx, "a") // a becomes MRU
	require.NoError(t, m.Set(ctx, "c", "3", 0))

	_, okA, _ := m.Get(ctx, "a")
	_, okB, _ := m.Get(ctx, "b")
	_, okC, _ := m.Get(ctx, "c")
	assert.True(t, okA)
	assert.False(t, okB, "b was least recently used")
	assert.True(t, okC)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	m, clk := newTestMemory(t)

	require.NoError(t, m.Set(ctx, "short", "x", time.Second))
	require.NoError(t, m.Set(ctx, "long", "y", time.Hour))
	clk.Advance(2 * time.Second)
	m.Purge()

	assert.Equal(t, 1, m.Len())
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10 * time.Millisecond)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, "k", "v", 0), ErrClosed)
	assert.ErrorIs(t, m.Delete(ctx, "k"), ErrClosed)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = m.Set(ctx, "shared", "v", time.Minute)
				_, _, _ = m.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "memcached"})
	assert.Error(t, err)
}
