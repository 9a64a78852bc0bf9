package auth

import (
	"context"

	"github.com/goliatone/go-auth-service/middleware/jwtware"
)

// ValidationListener aliases the jwtware listener so consumers can use auth helpers directly.
type ValidationListener = jwtware.ValidationListener

// TokenServiceValidator adapts a TokenService to the jwtware validator.
func TokenServiceValidator(tokens TokenService) jwtware.TokenValidator {
	return tokenServiceValidator{tokens: tokens}
}

type tokenServiceValidator struct {
	tokens TokenService
}

func (v tokenServiceValidator) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := v.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ContextEnricherAdapter stores claims validated by jwtware in the request
// context so handlers can read them with GetClaims.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}
	return WithClaimsContext(c, authClaims)
}

// RegisterValidationListeners appends listeners to a jwtware.Config in a safe, reusable way.
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil || len(listeners) == 0 {
		return
	}
	cfg.ValidationListeners = append(cfg.ValidationListeners, listeners...)
}
