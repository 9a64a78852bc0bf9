package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth-service/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const (
	tokenErrorMessage      = "Invalid or expired token"
	unexpectedErrorMessage = "An unexpected server error occurred"
)

// ErrBadRequestBody is returned when the request body cannot be decoded
var ErrBadRequestBody = errors.New("Invalid request body", errors.CategoryBadInput).
	WithTextCode("BAD_REQUEST").
	WithCode(errors.CodeBadRequest)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error      string            `json:"error"`
	Validation map[string]string `json:"validation,omitempty"`
}

// HTTPErrorHandler is the fiber ErrorHandler that turns package errors
// into status codes and {"error": ...} bodies. Internal failures never
// leak detail to the client.
func HTTPErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		richErr := toRichError(err)

		logger.Info(
			"request rejected",
			"method", c.Method(),
			"path", c.Path(),
			"status", richErr.Code,
			"text_code", richErr.TextCode,
			"error", err.Error(),
		)

		body := ErrorResponse{Error: richErr.Message}

		switch {
		case IsTokenError(richErr):
			body.Error = tokenErrorMessage
		case richErr.Code >= fiber.StatusInternalServerError:
			logger.Error(
				"internal error",
				"path", c.Path(),
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
			body.Error = unexpectedErrorMessage
		case errors.IsValidation(richErr):
			if m := richErr.ValidationMap(); len(m) > 0 {
				body.Validation = m
			}
		}

		return c.Status(richErr.Code).JSON(body)
	}
}

func toRichError(err error) *errors.Error {
	switch {
	case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
		return ErrMissingToken
	case errors.Is(err, jwtware.ErrRoleDenied):
		return ErrForbidden
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		if richErr.Code == 0 {
			return richErr.Clone().WithCode(errors.CodeInternal)
		}
		return richErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return errors.New(fiberErr.Message, errors.CategoryRouting).
			WithCode(fiberErr.Code)
	}

	return errors.Wrap(err, errors.CategoryInternal, unexpectedErrorMessage).
		WithTextCode(TextCodeUnexpectedInternal).
		WithCode(errors.CodeInternal)
}
