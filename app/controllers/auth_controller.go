package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/repositories"
	"yatube/app/services"
	"yatube/app/views"
)

// AuthController handles signup, login and logout
type AuthController struct {
	userService *services.UserService
	sessions    *auth.Sessions
	templates   *views.Templates
}

func NewAuthController(userService *services.UserService, sessions *auth.Sessions, templates *views.Templates) *AuthController {
	return &AuthController{userService: userService, sessions: sessions, templates: templates}
}

type signupData struct {
	base
	Form *forms.SignupForm
}

type loginData struct {
	base
	Form *forms.LoginForm
}

const badCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// Signup shows and handles the registration form
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	form := &forms.SignupForm{Errors: forms.Errors{}}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form = forms.NewSignupForm(r.PostForm)
		ok, err := form.Validate()
		if err != nil {
			serverError(w, r, err)
			return
		}
		if ok {
			user, err := ac.userService.Register(services.Registration{
				Username:  form.Username,
				FirstName: form.FirstName,
				LastName:  form.LastName,
				Email:     form.Email,
				Password:  form.Password1,
			})
			switch {
			case errors.Is(err, repositories.ErrDuplicate):
				form.Errors.Add("username", "A user with that username already exists.")
			case err != nil:
				serverError(w, r, err)
				return
			default:
				if err := ac.sessions.SetCookie(w, user.ID, user.Username); err != nil {
					serverError(w, r, err)
					return
				}
				redirect(w, r, "/")
				return
			}
		}
	}
	render(w, r, ac.templates, "users/signup", http.StatusOK, signupData{base: baseFor(r), Form: form})
}

// Login shows and handles the login form
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	form := &forms.LoginForm{Next: r.URL.Query().Get("next"), Errors: forms.Errors{}}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form = forms.NewLoginForm(r.PostForm)
		ok, err := form.Validate()
		if err != nil {
			serverError(w, r, err)
			return
		}
		if ok {
			user, err := ac.userService.Authenticate(form.Username, form.Password)
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				form.Errors.Add(forms.NonField, badCredentials)
			case err != nil:
				serverError(w, r, err)
				return
			default:
				if err := ac.sessions.SetCookie(w, user.ID, user.Username); err != nil {
					serverError(w, r, err)
					return
				}
				redirect(w, r, safeNext(form.Next))
				return
			}
		}
	}
	render(w, r, ac.templates, "users/login", http.StatusOK, loginData{base: baseFor(r), Form: form})
}

// Logout clears the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.ClearCookie(w)
	render(w, r, ac.templates, "users/logged_out", http.StatusOK, base{})
}

// safeNext returns next if it is a path on this site, else "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
