package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"ExpenseTracker/pkg/cache"
	"ExpenseTracker/pkg/metrics"
)

// KeyPrefix namespaces revocation entries inside a shared store.
const KeyPrefix = "auth_token_"

// TokenKey derives the ledger key of a raw token.
func TokenKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Ledger records revoked tokens in a cache.Store. Entries expire with the token.
type Ledger struct {
	store   cache.Store
	log     zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type LedgerOption func(*Ledger)

func WithLedgerLogger(l zerolog.Logger) LedgerOption {
	return func(lg *Ledger) { lg.log = l }
}

func WithLedgerMetrics(m *metrics.Metrics) LedgerOption {
	return func(lg *Ledger) { lg.metrics = m }
}

func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(lg *Ledger) { lg.now = now }
}

func NewLedger(store cache.Store, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRevoked reports whether an unexpired entry exists for tokenKey.
func (l *Ledger) IsRevoked(ctx context.Context, tokenKey string) (bool, error) {
	_, ok, err := l.store.Get(ctx, KeyPrefix+tokenKey)
	if err != nil {
		return false, l.storeError("is_revoked", err)
	}
	return ok, nil
}

// Revoke marks tokenKey as revoked for ttl. ttl <= 0 is a no-op: the token has
// already expired. An existing entry is left alone so its TTL is not reset.
func (l *Ledger) Revoke(ctx context.Context, tokenKey string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	revoked, err := l.IsRevoked(ctx, tokenKey)
	if err != nil {
		return err
	}
	if revoked {
		return nil
	}

	markedAt := l.now().UTC().Format(time.RFC3339Nano)
	if err := l.store.Set(ctx, KeyPrefix+tokenKey, markedAt, ttl); err != nil {
		return l.storeError("revoke", err)
	}
	l.metrics.Revoked()
	l.log.Debug().Str("token_key", tokenKey).Dur("ttl", ttl).Msg("token revoked")
	return nil
}

// Unrevoke removes the entry early. A missing entry is not an error.
func (l *Ledger) Unrevoke(ctx context.Context, tokenKey string) error {
	if err := l.store.Delete(ctx, KeyPrefix+tokenKey); err != nil {
		return l.storeError("unrevoke", err)
	}
	l.metrics.Unrevoked()
	l.log.Info().Str("token_key", tokenKey).Msg("token unrevoked")
	return nil
}

// RevokeToken revokes raw for the rest of its lifetime.
func (l *Ledger) RevokeToken(ctx context.Context, raw string, expiresAt time.Time) error {
	return l.Revoke(ctx, TokenKey(raw), expiresAt.Sub(l.now()))
}

func (l *Ledger) UnrevokeToken(ctx context.Context, raw string) error {
	return l.Unrevoke(ctx, TokenKey(raw))
}

func (l *Ledger) IsTokenRevoked(ctx context.Context, raw string) (bool, error) {
	return l.IsRevoked(ctx, TokenKey(raw))
}

func (l *Ledger) storeError(op string, err error) error {
	l.metrics.StoreError(op)
	l.log.Error().Err(err).Str("op", op).Msg("revocation store failure")
	return &StoreError{Op: op, Err: err}
}
