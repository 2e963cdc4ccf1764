package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to the echo.Validator
// interface so request DTO tags are checked on Bind.
type CustomValidator struct {
	v *validator.Validate
}

// New returns a validator ready to register on an echo instance.
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct tags on a bound request.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
