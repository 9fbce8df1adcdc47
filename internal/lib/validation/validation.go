package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?\d{9,15}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "")
)

// New returns a validator with the booking-specific tags registered.
func New() *validator.Validate {
	v := validator.New()

	mustRegister(v, "phone", validatePhone)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

// IsPhone reports whether s is a phone number once spaces and dashes are removed.
func IsPhone(s string) bool {
	return phonePattern.MatchString(phoneStripper.Replace(s))
}
