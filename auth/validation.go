package auth

import (
	validatorlib "github.com/go-playground/validator/v10"

	apperrors "github.com/inkwell-labs/bookstore/internal/errors"
	"github.com/inkwell-labs/bookstore/users"
)

// Validator performs request-boundary validation and turns failures into
// field-level messages for 400 responses.
type Validator struct {
	validate *validatorlib.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validatorlib.New(validatorlib.WithRequiredStructEnabled())}
}

// ValidateRegistration checks presence and shape of the registration payload
// and applies the password policy.
func (v *Validator) ValidateRegistration(req RegisterRequest) error {
	fields := map[string]string{}

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validatorlib.ValidationErrors
		if !apperrors.As(err, &validationErrs) {
			return apperrors.Wrapf(err, "registration validation")
		}
		for _, fieldErr := range validationErrs {
			fields[fieldName(fieldErr)] = fieldMessage(fieldErr)
		}
	}

	// Policy applies only once the field is present at all.
	if _, ok := fields["password"]; !ok {
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			fields["password"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

func fieldName(fe validatorlib.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	}
	return fe.Field()
}

func fieldMessage(fe validatorlib.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "too short"
	case "max":
		return "too long"
	}
	return "invalid value"
}
