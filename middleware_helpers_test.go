package auth_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/go-auth-service"
	"github.com/goliatone/go-auth-service/middleware/jwtware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceValidator(t *testing.T) {
	f := newAutherFixture(t)
	validator := auth.TokenServiceValidator(f.tokens)

	_, token, err := f.auther.Login(context.Background(), "admin@example.com", "adminpassword")
	require.NoError(t, err)

	claims, err := validator.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject())

	claims, err = validator.Validate("garbage")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestContextEnricherAdapter(t *testing.T) {
	f := newAutherFixture(t)
	claims := f.claims(t, "admin@example.com", "adminpassword")

	ctx := auth.ContextEnricherAdapter(context.Background(), claims)
	got, ok := auth.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, claims.Subject(), got.Subject())
}

func TestRegisterValidationListeners(t *testing.T) {
	listener := func(*fiber.Ctx, jwtware.AuthClaims) error { return nil }

	auth.RegisterValidationListeners(nil, listener)

	cfg := &jwtware.Config{}
	auth.RegisterValidationListeners(cfg)
	assert.Empty(t, cfg.ValidationListeners)

	auth.RegisterValidationListeners(cfg, listener, listener)
	assert.Len(t, cfg.ValidationListeners, 2)
}
