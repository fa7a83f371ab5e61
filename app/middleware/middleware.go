package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"yatube/app/auth"
	"yatube/app/models"
)

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// TrailingSlash redirects non-GET requests for a route's slash-less path with
// 308, so the method and form body survive. GET and HEAD keep the router's 301.
func TrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}
		route := mux.CurrentRoute(r)
		if route == nil {
			next.ServeHTTP(w, r)
			return
		}
		tpl, err := route.GetPathTemplate()
		if err != nil || !strings.HasSuffix(tpl, "/") {
			next.ServeHTTP(w, r)
			return
		}
		target := *r.URL
		target.Path += "/"
		http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
	})
}

// UserLookup loads the user a session belongs to.
type UserLookup interface {
	GetByID(id uint64) (*models.User, error)
}

// Identity attaches the signed-in user to the request context. Requests
// without a valid session pass through anonymous, and a session cookie that
// no longer resolves to a user is cleared.
func Identity(sessions *auth.Sessions, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessionUser(sessions, users, r)
			if err != nil {
				if hasSessionCookie(r) {
					log.Debug().Err(err).Str("path", r.URL.Path).Msg("clearing stale session")
					sessions.ClearCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func sessionUser(sessions *auth.Sessions, users UserLookup, r *http.Request) (*models.User, error) {
	claims, err := sessions.FromRequest(r)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return users.GetByID(id)
}

func hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(auth.CookieName)
	return err == nil && cookie.Value != ""
}
