package token

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const signingAlg = "HS256"

// Claims is the payload of an access token.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the subject as a numeric user id.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token: subject %q is not a user id: %w", c.Subject, err)
	}
	return uint(id), nil
}

func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Expiry returns exp, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Remaining is the lifetime left at now; never negative.
func (c *Claims) Remaining(now time.Time) time.Duration {
	d := c.Expiry().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Codec signs and verifies HS256 tokens. It never checks expiry or revocation.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type CodecOption func(*Codec)

func WithIssuer(iss string) CodecOption {
	return func(c *Codec) { c.issuer = iss }
}

// WithTTL sets the lifetime of issued tokens (default 7 days).
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCodecClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret string, opts ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	c := &Codec{
		secret: []byte(secret),
		ttl:    7 * 24 * time.Hour,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingAlg}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a new token for subject with a fresh jti.
func (c *Codec) Issue(subject, email string, roles []string) (string, *Claims, error) {
	now := c.now().Truncate(time.Second)
	claims := &Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("token: sign: %w", err)
	}
	return raw, claims, nil
}

// Decode verifies structure, algorithm and signature and returns the claims.
// All failures are *DecodeError.
func (c *Codec) Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, &DecodeError{Err: ErrMissingToken}
	}
	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if claims.ExpiresAt == nil {
		return nil, &DecodeError{Err: fmt.Errorf("%w: exp", jwt.ErrTokenRequiredClaimMissing)}
	}
	return claims, nil
}

// IsDecodeError reports whether err came from Decode.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
