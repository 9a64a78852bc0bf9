package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used for stored digests
const DefaultPasswordCost = 12

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// BcryptHasher hashes passwords with a fixed bcrypt cost
type BcryptHasher struct {
	cost int
}

var _ PasswordAuthenticator = (*BcryptHasher)(nil)

// HasherOption configures a BcryptHasher
type HasherOption func(*BcryptHasher)

// WithCost overrides the bcrypt cost, mostly for tests
func WithCost(cost int) HasherOption {
	return func(h *BcryptHasher) {
		h.cost = cost
	}
}

// NewBcryptHasher returns a hasher using passwordHashCost unless overridden
func NewBcryptHasher(opts ...HasherOption) *BcryptHasher {
	h := &BcryptHasher{cost: passwordHashCost()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HashPassword will generate a salted password hash. Two calls with the
// same password return different digests.
func (h *BcryptHasher) HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", ErrHashing
	}
	return string(digest), nil
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. A mismatch is reported as false, not as an error.
func (h *BcryptHasher) ComparePasswordAndHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrHashing
	}
}

// Cost returns the configured bcrypt cost
func (h *BcryptHasher) Cost() int {
	return h.cost
}
