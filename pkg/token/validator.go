package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// FailurePolicy decides what a store outage means for a token.
type FailurePolicy int

const (
	// FailClosed treats a token as unusable when revocation cannot be checked.
	FailClosed FailurePolicy = iota
	// FailOpen treats it as not revoked; the failure is still logged and counted.
	FailOpen
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "fail_closed":
		return FailClosed, nil
	case "fail_open":
		return FailOpen, nil
	}
	return FailClosed, fmt.Errorf("token: unknown failure policy %q", s)
}

func (p FailurePolicy) String() string {
	if p == FailOpen {
		return "fail_open"
	}
	return "fail_closed"
}

// Validator answers whether a raw token is usable right now.
type Validator struct {
	codec  *Codec
	ledger *Ledger
	policy FailurePolicy
	now    func() time.Time
	log    zerolog.Logger
}

type ValidatorOption func(*Validator)

func WithPolicy(p FailurePolicy) ValidatorOption {
	return func(v *Validator) { v.policy = p }
}

func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

func WithValidatorLogger(l zerolog.Logger) ValidatorOption {
	return func(v *Validator) { v.log = l }
}

func NewValidator(codec *Codec, ledger *Ledger, opts ...ValidatorOption) *Validator {
	v := &Validator{
		codec:  codec,
		ledger: ledger,
		policy: FailClosed,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Policy() FailurePolicy { return v.policy }
func (v *Validator) Codec() *Codec          { return v.codec }
func (v *Validator) Ledger() *Ledger        { return v.ledger }

// Authenticate runs the local checks: decode, then expiry.
func (v *Validator) Authenticate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	if !v.now().Before(claims.Expiry()) {
		return claims, &ValidationError{Reason: ErrTokenExpired}
	}
	return claims, nil
}

// Validate runs Authenticate and then consults the ledger. Errors are
// *DecodeError, *ValidationError or *StoreError.
func (v *Validator) Validate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := v.Authenticate(raw)
	if err != nil {
		return claims, err
	}
	revoked, err := v.ledger.IsRevoked(ctx, TokenKey(raw))
	if err != nil {
		return claims, err
	}
	if revoked {
		return claims, &ValidationError{Reason: ErrTokenRevoked}
	}
	return claims, nil
}

// IsValid applies the failure policy to Validate.
func (v *Validator) IsValid(ctx context.Context, raw string) bool {
	_, err := v.Validate(ctx, raw)
	return v.Allow(err)
}

// Allow maps a Validate error to a decision. Only store errors depend on the policy.
func (v *Validator) Allow(err error) bool {
	if err == nil {
		return true
	}
	var se *StoreError
	if errors.As(err, &se) && v.policy == FailOpen {
		v.log.Warn().Err(err).Msg("revocation status unknown, allowing token (fail_open)")
		return true
	}
	return false
}
