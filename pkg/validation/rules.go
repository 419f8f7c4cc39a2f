package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RFID readers emit opaque alphanumeric identifiers; reject anything that
// clearly cannot have come off a badge.
var rfidPattern = regexp.MustCompile(`^[A-Za-z0-9:-]{4,64}$`)

func registerRules(v *validator.Validate) error {
	return v.RegisterValidation("rfid", func(fl validator.FieldLevel) bool {
		return rfidPattern.MatchString(fl.Field().String())
	})
}
