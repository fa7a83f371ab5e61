package views

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEveryPage(t *testing.T) {
	templates, err := Load()
	require.NoError(t, err)
	for _, name := range Pages {
		assert.Contains(t, templates.pages, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	templates := MustLoad()
	var buf bytes.Buffer
	err := templates.Render(&buf, "posts/missing", nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderNotFound(t *testing.T) {
	templates := MustLoad()
	var buf bytes.Buffer
	data := struct {
		User interface{}
		Path string
	}{Path: "/nowhere/"}
	require.NoError(t, templates.Render(&buf, "errors/404", data))
	assert.Contains(t, buf.String(), "/nowhere/")
	assert.Contains(t, buf.String(), "Log in")
}

func TestRenderFailureWritesNothing(t *testing.T) {
	templates := MustLoad()
	var buf bytes.Buffer
	// The layout needs a User field.
	err := templates.Render(&buf, "errors/404", struct{ Path string }{Path: "/"})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pagination"))
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, "3 March 2024", formatDate(time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "one two", truncateWords(3, "one two"))
	assert.Equal(t, "one two …", truncateWords(2, "one two three"))
}
