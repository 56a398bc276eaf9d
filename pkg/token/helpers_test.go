package token

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ExpenseTracker/pkg/cache"
)

const testSecret = "test-secret"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 21, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// countingStore records how often the ledger reaches the store.
type countingStore struct {
	cache.Store
	gets atomic.Int32
	sets atomic.Int32
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.gets.Add(1)
	return s.Store.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.sets.Add(1)
	return s.Store.Set(ctx, key, value, ttl)
}

type fixture struct {
	clock     *clock
	store     *countingStore
	mem       *cache.Memory
	codec     *Codec
	ledger    *Ledger
	validator *Validator
}

func newFixture(t *testing.T, policy FailurePolicy) *fixture {
	t.Helper()
	clk := newClock()
	mem := cache.NewMemory(0, cache.WithClock(clk.Now))
	t.Cleanup(func() { _ = mem.Close() })
	store := &countingStore{Store: mem}

	codec, err := NewCodec(testSecret, WithTTL(7*24*time.Hour), WithIssuer("test"), WithCodecClock(clk.Now))
	require.NoError(t, err)
	ledger := NewLedger(store, WithLedgerClock(clk.Now))
	v := NewValidator(codec, ledger, WithPolicy(policy), WithValidatorClock(clk.Now))

	return &fixture{clock: clk, store: store, mem: mem, codec: codec, ledger: ledger, validator: v}
}

func (f *fixture) issue(t *testing.T, sub string) (string, *Claims) {
	t.Helper()
	raw, claims, err := f.codec.Issue(sub, sub+"@test.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	return raw, claims
}
