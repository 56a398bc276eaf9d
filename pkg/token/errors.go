package token

import "errors"

var (
	ErrMissingToken = errors.New("token: missing")
	ErrTokenExpired = errors.New("token: expired")
	ErrTokenRevoked = errors.New("token: revoked")
	ErrEmptySecret  = errors.New("token: secret cannot be empty")
)

// DecodeError reports a token that failed structural or signature checks.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "token: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// StoreError reports a revocation store failure. Op is the ledger operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "token: store " + e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports a well-formed token that is no longer usable.
// Reason is ErrTokenExpired or ErrTokenRevoked.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string { return "token: invalid: " + e.Reason.Error() }
func (e *ValidationError) Unwrap() error { return e.Reason }
