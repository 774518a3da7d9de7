// Package jwtx wraps golang-jwt with the small symmetric-key surface this
// service needs: issue a signed expiring token for a subject, and verify one
// back into its claims. The signing key and algorithm are fixed at
// construction; rotating them invalidates every previously issued token.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
// Short-lived for security - typical range is 15m to 1h.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrAlgMismatch    = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig     = errors.New("jwtx: invalid signature")
	ErrExpired        = errors.New("jwtx: token expired")
	ErrMissingSubject = errors.New("jwtx: missing 'sub' claim")

	errUnsupportedAlg = errors.New("jwtx: unsupported signing algorithm")
)

// Codec signs and verifies compact HMAC-signed tokens. The zero value is not
// usable; construct with New. Verification time comes from the injected
// clock, which defaults to time.Now so tests can pin expiry.
type Codec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the codec's time source. Issue and Verify both consult
// it, so a frozen clock makes expiry behaviour deterministic in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// New builds a Codec for the given symmetric secret and algorithm name
// (HS256, HS384 or HS512). An empty algorithm defaults to HS256.
func New(secret []byte, algorithm string, opts ...Option) (*Codec, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "", jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, errUnsupportedAlg
	}

	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}

	c := &Codec{
		secret: secret,
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject with the given extra claims passed through
// verbatim. A non-positive ttl falls back to DefaultAccessTokenTTL. The
// expiry is absolute: now + ttl at the moment of issuance.
func (c *Codec) Issue(subject string, extra map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	now := c.now().UTC()

	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims. Failures are
// reported through the package sentinel errors so callers can distinguish
// malformed, tampered, expired and subject-less tokens.
func (c *Codec) Verify(token string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithTimeFunc(func() time.Time { return c.now().UTC() }),
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrAlgMismatch
		default:
			return nil, ErrMalformed
		}
	}

	// A structurally valid token is still useless to us without an identity.
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
