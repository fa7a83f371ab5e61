package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/views"
)

type testApp struct {
	router   *mux.Router
	store    *repositories.Store
	sessions *auth.Sessions
}

func setupTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	db, err := repositories.OpenBadger("")
	require.NoError(t, err)
	store := repositories.NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	store := setupTestStore(t)
	sessions := auth.NewSessions("test-secret")
	return &testApp{
		router:   SetupMVCRoutes(store, sessions, views.MustLoad()),
		store:    store,
		sessions: sessions,
	}
}

func (a *testApp) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hash}
	require.NoError(t, a.store.Users.Create(user))
	return user
}

func (a *testApp) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Slug: slug, Title: "Group " + slug}
	require.NoError(t, a.store.Groups.Create(group))
	return group
}

func (a *testApp) post(t *testing.T, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	post.SetGroup(group)
	require.NoError(t, a.store.Posts.Create(post))
	return post
}

func (a *testApp) cookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

// do sends a request through the router. form, when non-nil, is posted as
// a urlencoded body.
func (a *testApp) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
