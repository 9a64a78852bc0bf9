package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenValidity is the fixed lifetime of every issued token
const TokenValidity = 24 * time.Hour

// exp has second precision, the leeway keeps the whole second of exp valid
const expiryLeeway = time.Second

// TokenServiceImpl implements the TokenService interface with HS256
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	logger     Logger
	now        func() time.Time
}

var _ TokenService = (*TokenServiceImpl)(nil)

// TokenServiceOption configures a TokenServiceImpl
type TokenServiceOption func(*TokenServiceImpl)

// WithIssuer sets the iss claim and requires it on validation
func WithIssuer(issuer string) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		ts.issuer = issuer
	}
}

// WithTokenLogger sets the logger
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// WithClock overrides the time source used for iat, exp and validation
func WithClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if now != nil {
			ts.now = now
		}
	}
}

// NewTokenService creates a new TokenService instance. An empty signing
// key is a configuration error and returns ErrSigning.
func NewTokenService(signingKey []byte, opts ...TokenServiceOption) (*TokenServiceImpl, error) {
	if len(signingKey) == 0 {
		return nil, ErrSigning
	}

	key := make([]byte, len(signingKey))
	copy(key, signingKey)

	ts := &TokenServiceImpl{
		signingKey: key,
		logger:     defLogger{},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(ts)
	}

	return ts, nil
}

// Generate creates a JWT bound to the identity email and role
func (ts *TokenServiceImpl) Generate(identity Identity) (string, error) {
	if identity == nil {
		return "", errors.New("identity is required", errors.CategoryBadInput)
	}

	now := ts.now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.Email(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
		UID:      identity.ID(),
		UserRole: UserRole(identity.Role()),
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		ts.logger.Error("TokenService failed to sign JWT", "error", err)
		return "", ErrSigning
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// The signature is checked before expiration, so a forged expired token
// reports ErrTokenInvalid. A token stays valid through the second of its
// exp claim and is expired once now > exp.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(expiryLeeway),
		jwt.WithTimeFunc(ts.now),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			ts.logger.Debug("TokenService validate: malformed token", "error", err)
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			ts.logger.Debug("TokenService validate: expired token", "error", err)
			return nil, ErrTokenExpired
		default:
			ts.logger.Debug("TokenService validate: invalid token", "error", err)
			return nil, ErrTokenInvalid
		}
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		if _, known := ParseRole(claims.Role()); !known {
			ts.logger.Debug("TokenService validate: unknown role", "role", claims.Role())
			return nil, ErrTokenInvalid
		}
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenInvalid
}
