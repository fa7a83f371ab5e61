package forms

import (
	"net/url"
	"strings"

	"yatube/app/models"
)

// SignupForm registers a new account.
type SignupForm struct {
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
	Username  string `validate:"required,max=150,username"`
	Email     string `validate:"omitempty,max=254,email"`
	Password1 string `validate:"required,min=8"`
	Password2 string `validate:"required,eqfield=Password1"`

	Errors Errors `validate:"-"`
}

var signupFields = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Username":  "username",
	"Email":     "email",
	"Password1": "password1",
	"Password2": "password2",
}

func NewSignupForm(values url.Values) *SignupForm {
	return &SignupForm{
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password1: values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    Errors{},
	}
}

// Validate reports whether the form is valid, filling Errors when it isn't.
func (f *SignupForm) Validate() (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if err := collect(f.Errors, models.Validator().Struct(f), signupFields); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}

// LoginForm authenticates an existing account.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	// Next is where to go after a successful login.
	Next string `validate:"-"`

	Errors Errors `validate:"-"`
}

var loginFields = map[string]string{"Username": "username", "Password": "password"}

func NewLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
		Next:     values.Get("next"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	if err := collect(f.Errors, models.Validator().Struct(f), loginFields); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}
