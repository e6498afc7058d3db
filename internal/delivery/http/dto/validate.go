package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks v against its validate tags. Failures are returned as
// validator.ValidationErrors.
func Validate(v any) error {
	return validate.Struct(v)
}
