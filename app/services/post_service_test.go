package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/app/repositories"
	"yatube/app/repositories/mock"
)

type fixture struct {
	store   *repositories.Store
	service *PostService
	author  *models.User
	other   *models.User
	cats    *models.Group
	dogs    *models.Group
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mock.NewStore()
	f := &fixture{
		store:   store,
		service: NewPostService(store.Posts, store.Groups, store.Users),
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	// Each created post is one minute newer than the previous one.
	f.service.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}

	f.author = &models.User{Username: "author", PasswordHash: "x"}
	f.other = &models.User{Username: "hasnoname", PasswordHash: "x"}
	require.NoError(t, store.Users.Create(f.author))
	require.NoError(t, store.Users.Create(f.other))

	f.cats = &models.Group{Slug: "cats", Title: "Cats"}
	f.dogs = &models.Group{Slug: "dogs", Title: "Dogs"}
	require.NoError(t, store.Groups.Create(f.cats))
	require.NoError(t, store.Groups.Create(f.dogs))
	return f
}

func (f *fixture) post(t *testing.T, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	payload := forms.PostPayload{Text: text}
	if group != nil {
		id := group.ID
		payload.GroupID = &id
	}
	post, err := f.service.CreatePost(author, payload)
	require.NoError(t, err)
	return post
}

func TestListAllNewestFirst(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.post(t, f.author, fmt.Sprintf("post %d", i), nil)
	}

	first, err := f.service.ListAll(1)
	require.NoError(t, err)
	second, err := f.service.ListAll(2)
	require.NoError(t, err)

	assert.Len(t, first.Items, 10)
	assert.Len(t, second.Items, 2)
	assert.Equal(t, 12, first.Count)

	all := append(append([]*models.Post{}, first.Items...), second.Items...)
	require.Len(t, all, 12)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt), "posts must be strictly newest first")
	}
	assert.Equal(t, "post 11", all[0].Text)
	assert.Equal(t, "post 0", all[11].Text)
	for _, p := range all {
		require.NotNil(t, p.Author)
		assert.Equal(t, "author", p.Author.Username)
	}
}

func TestListAllEmptyAndClamped(t *testing.T) {
	f := newFixture(t)

	page, err := f.service.ListAll(1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.NumPages)

	for i := 0; i < 3; i++ {
		f.post(t, f.author, "text", nil)
	}
	page, err = f.service.ListAll(99)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 3)
}

func TestListByGroup(t *testing.T) {
	f := newFixture(t)
	catPost := f.post(t, f.author, "meow", f.cats)
	f.post(t, f.author, "woof", f.dogs)
	f.post(t, f.other, "no group", nil)

	feed, err := f.service.ListByGroup("cats", 1)
	require.NoError(t, err)
	assert.Equal(t, f.cats.ID, feed.Group.ID)
	require.Len(t, feed.Page.Items, 1)
	assert.Equal(t, catPost.ID, feed.Page.Items[0].ID)
	for _, p := range feed.Page.Items {
		require.NotNil(t, p.Group)
		assert.Equal(t, "cats", p.Group.Slug)
	}

	_, err = f.service.ListByGroup("missing", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListByGroupEmpty(t *testing.T) {
	f := newFixture(t)
	feed, err := f.service.ListByGroup("dogs", 1)
	require.NoError(t, err)
	assert.Equal(t, "Dogs", feed.Group.Title)
	assert.Empty(t, feed.Page.Items)
}

func TestMovingPostBetweenGroups(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.author, "wandering", f.cats)

	dogs := f.dogs.ID
	_, err := f.service.UpdatePost(f.author, post.ID, forms.PostPayload{Text: "wandering", GroupID: &dogs})
	require.NoError(t, err)

	cats, err := f.service.ListByGroup("cats", 1)
	require.NoError(t, err)
	assert.Empty(t, cats.Page.Items)

	dogFeed, err := f.service.ListByGroup("dogs", 1)
	require.NoError(t, err)
	require.Len(t, dogFeed.Page.Items, 1)
	assert.Equal(t, post.ID, dogFeed.Page.Items[0].ID)

	all, err := f.service.ListAll(1)
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)

	profile, err := f.service.ListByAuthor("author", 1)
	require.NoError(t, err)
	assert.Len(t, profile.Page.Items, 1)
}

func TestListByAuthorCountsAllPosts(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.post(t, f.author, fmt.Sprintf("post %d", i), nil)
	}
	f.post(t, f.other, "someone else", nil)

	feed, err := f.service.ListByAuthor("author", 1)
	require.NoError(t, err)
	assert.Equal(t, "author", feed.Author.Username)
	assert.Equal(t, 12, feed.PostsCount)
	assert.Len(t, feed.Page.Items, 10)
	for _, p := range feed.Page.Items {
		assert.Equal(t, f.author.ID, p.AuthorID)
	}

	_, err = f.service.ListByAuthor("nobody", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGetPost(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.author, "first", nil)
	post := f.post(t, f.author, "second", f.cats)

	detail, err := f.service.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", detail.Post.Text)
	assert.Equal(t, "author", detail.Post.Author.Username)
	assert.Equal(t, "cats", detail.Post.Group.Slug)
	assert.Equal(t, 2, detail.AuthorPostsCount)

	_, err = f.service.GetPost(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)

	cats := f.cats.ID
	post, err := f.service.CreatePost(f.author, forms.PostPayload{Text: "Hello", GroupID: &cats})
	require.NoError(t, err)

	stored, err := f.store.Posts.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", stored.Text)
	assert.Equal(t, f.author.ID, stored.AuthorID)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, cats, *stored.GroupID)
	assert.False(t, stored.CreatedAt.IsZero())

	count, err := f.store.Posts.Count(repositories.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreatePostAnonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreatePost(nil, forms.PostPayload{Text: "Hello"})
	assert.ErrorIs(t, err, ErrForbidden)

	count, err := f.store.Posts.Count(repositories.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdatePostByAuthor(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.author, "before", f.cats)
	before, err := f.store.Posts.GetByID(post.ID)
	require.NoError(t, err)

	updated, err := f.service.UpdatePost(f.author, post.ID, forms.PostPayload{Text: "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)

	after, err := f.store.Posts.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", after.Text)
	assert.Nil(t, after.GroupID, "an empty group choice clears the group")
	assert.Equal(t, before.AuthorID, after.AuthorID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestUpdatePostDenied(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.author, "original", f.cats)
	dogs := f.dogs.ID

	for name, caller := range map[string]*models.User{"anonymous": nil, "non-author": f.other} {
		t.Run(name, func(t *testing.T) {
			_, err := f.service.UpdatePost(caller, post.ID, forms.PostPayload{Text: "hijacked", GroupID: &dogs})
			assert.ErrorIs(t, err, ErrForbidden)

			stored, err := f.store.Posts.GetByID(post.ID)
			require.NoError(t, err)
			assert.Equal(t, "original", stored.Text)
			require.NotNil(t, stored.GroupID)
			assert.Equal(t, f.cats.ID, *stored.GroupID)
		})
	}
}

func TestEditablePost(t *testing.T) {
	f := newFixture(t)
	post := f.post(t, f.author, "mine", nil)

	got, err := f.service.EditablePost(f.author, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	got, err = f.service.EditablePost(f.other, post.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotNil(t, got, "denied callers still learn the post exists so they can be redirected to it")

	_, err = f.service.EditablePost(nil, 404)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

type brokenPosts struct{ repositories.PostRepository }

func (brokenPosts) List(repositories.PostFilter) ([]*models.Post, error) {
	return nil, errors.New("disk on fire")
}

func TestListPropagatesStorageErrors(t *testing.T) {
	f := newFixture(t)
	svc := NewPostService(brokenPosts{f.store.Posts}, f.store.Groups, f.store.Users)
	_, err := svc.ListAll(1)
	assert.ErrorContains(t, err, "disk on fire")
	assert.False(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGroupsForForm(t *testing.T) {
	f := newFixture(t)
	groups, err := f.service.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title)

	g, err := f.service.GroupLookup().GetByID(f.dogs.ID)
	require.NoError(t, err)
	assert.Equal(t, "dogs", g.Slug)
}
