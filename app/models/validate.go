package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		// All-dot names collapse to another path in profile URLs.
		return usernamePattern.MatchString(name) && strings.Trim(name, ".") != ""
	})
	return v
}

// Validator returns the shared validator with the model tags registered
// (notblank, slug, username). Forms use it so their rules match the models.
func Validator() *validator.Validate {
	return validate
}
