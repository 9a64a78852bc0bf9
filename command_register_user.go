package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// RegisterUserMessage is the registration payload shared by self
// registration, admin provisioning and the bootstrap seed.
type RegisterUserMessage struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate requires every field and rejects passwords bcrypt would
// silently truncate.
func (e RegisterUserMessage) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.FirstName, validation.Required),
		validation.Field(&e.LastName, validation.Required),
		validation.Field(&e.Email, validation.Required),
		validation.Field(&e.Password,
			validation.Required,
			validation.Length(0, maxPasswordBytes).Error("must be at most 72 bytes"),
		),
	)
	if err == nil {
		return nil
	}
	return validationError(err)
}

func (e RegisterUserMessage) account(hash string, role UserRole) (NewAccount, error) {
	id, err := hashid.NewUUID(e.Email)
	if err != nil {
		return NewAccount{}, goerrors.Wrap(err, goerrors.CategoryInternal, "could not derive external id").
			WithTextCode(TextCodeUnexpectedInternal).
			WithCode(goerrors.CodeInternal)
	}

	return NewAccount{
		Email:        e.Email,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		PasswordHash: hash,
		Role:         role,
		ExternalID:   id,
	}, nil
}

// invalidInputMessage is reported when every field is present but some
// are rejected.
const invalidInputMessage = "Invalid registration input"

// validationError converts ozzo field errors into an error that still
// matches ErrValidation with errors.Is.
func validationError(err error) error {
	msg := invalidInputMessage
	if hasMissingField(err) {
		msg = ErrValidation.Message
	}

	verr := goerrors.FromOzzoValidation(err, msg)
	verr.Source = ErrValidation
	return verr.
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(TextCodeValidation)
}

func hasMissingField(err error) bool {
	var fields validation.Errors
	if !goerrors.As(err, &fields) {
		return false
	}
	for _, fieldErr := range fields {
		if ve, ok := fieldErr.(validation.Error); ok && ve.Code() == validation.ErrRequired.Code() {
			return true
		}
	}
	return false
}
