package auth_test

import (
	"fmt"
	"testing"

	auth "github.com/goliatone/go-auth-service"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		err      *goerrors.Error
		category goerrors.Category
		code     int
		textCode string
	}{
		{auth.ErrValidation, goerrors.CategoryValidation, 400, auth.TextCodeValidation},
		{auth.ErrInvalidCredentials, goerrors.CategoryAuth, 401, auth.TextCodeInvalidCreds},
		{auth.ErrDuplicateEmail, goerrors.CategoryConflict, 409, auth.TextCodeDuplicateEmail},
		{auth.ErrForbidden, goerrors.CategoryAuthz, 403, auth.TextCodeForbidden},
		{auth.ErrAccountNotFound, goerrors.CategoryNotFound, 404, auth.TextCodeAccountNotFound},
		{auth.ErrMissingToken, goerrors.CategoryAuth, 401, auth.TextCodeMissingToken},
		{auth.ErrTokenMalformed, goerrors.CategoryAuth, 401, auth.TextCodeTokenMalformed},
		{auth.ErrTokenInvalid, goerrors.CategoryAuth, 401, auth.TextCodeTokenInvalid},
		{auth.ErrTokenExpired, goerrors.CategoryAuth, 401, auth.TextCodeTokenExpired},
		{auth.ErrHashing, goerrors.CategoryInternal, 500, auth.TextCodeHashing},
		{auth.ErrSigning, goerrors.CategoryInternal, 500, auth.TextCodeSigning},
	}

	for _, tt := range tests {
		t.Run(tt.textCode, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
		})
	}
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "Invalid credentials", auth.ErrInvalidCredentials.Message)
	assert.Equal(t, "Email already registered", auth.ErrDuplicateEmail.Message)
	assert.Equal(t, "User not found", auth.ErrAccountNotFound.Message)
}

func TestIsTokenError(t *testing.T) {
	assert.True(t, auth.IsTokenError(auth.ErrMissingToken))
	assert.True(t, auth.IsTokenError(auth.ErrTokenExpired))
	assert.True(t, auth.IsTokenError(fmt.Errorf("gate: %w", auth.ErrTokenInvalid)))
	assert.False(t, auth.IsTokenError(auth.ErrForbidden))
	assert.False(t, auth.IsTokenError(nil))
}

func TestRoleRequiredError(t *testing.T) {
	err := auth.RoleRequiredError(auth.RoleAdmin)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, "Admin access required", richErr.Message)
	assert.Equal(t, 403, richErr.Code)
	assert.Equal(t, auth.TextCodeForbidden, richErr.TextCode)
	assert.Equal(t, "Access denied", auth.ErrForbidden.Message)
}
