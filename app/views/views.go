// Package views holds the embedded HTML templates and static assets.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists every page template. Each is parsed together with the layout
// and the shared includes.
var Pages = []string{
	"posts/index",
	"posts/group_list",
	"posts/profile",
	"posts/post_detail",
	"posts/create_post",
	"users/signup",
	"users/login",
	"users/logged_out",
	"errors/404",
}

// Templates renders named pages inside the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

// Load parses every page. It fails on the first template that doesn't parse.
func Load() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/includes/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// MustLoad is Load for callers that cannot continue without templates.
func MustLoad() *Templates {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes page name with data. Output is buffered so a failing
// template never leaves a half-written response.
func (t *Templates) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

var funcs = template.FuncMap{
	"date":     formatDate,
	"truncate": truncateWords,
	"linebreaks": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// truncateWords keeps the first n words of s, adding an ellipsis when cut.
func truncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}
