package auth

import (
	"fmt"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeValidation         = "VALIDATION_ERROR"
	TextCodeInvalidCreds       = "INVALID_CREDENTIALS"
	TextCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	TextCodeForbidden          = "FORBIDDEN"
	TextCodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	TextCodeMissingToken       = "MISSING_TOKEN"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTokenInvalid       = "TOKEN_INVALID"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeHashing            = "HASHING_ERROR"
	TextCodeSigning            = "SIGNING_ERROR"
	TextCodeUnexpectedInternal = "INTERNAL_ERROR"
)

// ErrValidation is returned for missing or malformed input
var ErrValidation = errors.New("First name, last name, email, and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials covers both unknown email and wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateEmail is returned when an account with the email exists
var ErrDuplicateEmail = errors.New("Email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrForbidden is returned when the caller role does not match the operation
var ErrForbidden = errors.New("Access denied", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// RoleRequiredError names the role the caller lacks. It matches
// ErrForbidden with errors.Is.
func RoleRequiredError(role UserRole) error {
	err := ErrForbidden.Clone()
	err.Message = fmt.Sprintf("%s access required", role)
	err.Source = ErrForbidden
	return err
}

// ErrAccountNotFound is returned when no account matches the email
var ErrAccountNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrMissingToken is returned when the request carries no bearer credential
var ErrMissingToken = errors.New("missing or malformed JWT", errors.CategoryAuth).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when the token cannot be decoded
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid is returned when the signature does not verify
var ErrTokenInvalid = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the token is past its expiration
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrHashing is returned when bcrypt rejects the cost or a stored digest
var ErrHashing = errors.New("password hashing failed", errors.CategoryInternal).
	WithTextCode(TextCodeHashing).
	WithCode(errors.CodeInternal)

// ErrSigning is returned when the signing key is unusable
var ErrSigning = errors.New("token signing failed", errors.CategoryInternal).
	WithTextCode(TextCodeSigning).
	WithCode(errors.CodeInternal)

// IsTokenError reports whether err is one of the token failures
// surfaced to clients as a uniform 401.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired)
}
