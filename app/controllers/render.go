package controllers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/views"
)

// base is embedded in every page's data; the layout reads User.
type base struct {
	User *models.User
}

func baseFor(r *http.Request) base {
	return base{User: auth.UserFromContext(r.Context())}
}

type notFoundData struct {
	base
	Path string
}

func render(w http.ResponseWriter, r *http.Request, templates *views.Templates, name string, status int, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Render writes nothing on failure, so the status can still be changed.
	rw := &deferredWriter{ResponseWriter: w, status: status}
	if err := templates.Render(rw, name, data); err != nil {
		serverError(w, r, err)
	}
}

// deferredWriter sends the status with the first byte of the body.
type deferredWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (d *deferredWriter) Write(b []byte) (int, error) {
	if !d.wroteHeader {
		d.ResponseWriter.WriteHeader(d.status)
		d.wroteHeader = true
	}
	return d.ResponseWriter.Write(b)
}

// NotFound renders the 404 page.
func NotFound(templates *views.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, templates)
	}
}

func notFound(w http.ResponseWriter, r *http.Request, templates *views.Templates) {
	render(w, r, templates, "errors/404", http.StatusNotFound, notFoundData{base: baseFor(r), Path: r.URL.Path})
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
