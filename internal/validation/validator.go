package validation

import (
	"github.com/go-playground/validator/v10"
)

var Validator = validator.New(validator.WithRequiredStructEnabled())

// Struct validates input structs by their validate tags.
func Struct(s any) error {
	return Validator.Struct(s)
}
