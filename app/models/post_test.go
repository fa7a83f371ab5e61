package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				Text:      "Hello",
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "blank text",
			post: &Post{
				ID:        1,
				Text:      "   \n\t",
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				ID:        1,
				Text:      "Hello",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				ID:        1,
				Text:      "Hello",
				AuthorID:  1,
				CreatedAt: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{
		ID:       1,
		Text:     "  Test Post  ",
		AuthorID: 1,
	}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, "Test Post", post.Text)

	created := post.CreatedAt
	post.BeforeCreate()
	assert.Equal(t, created, post.CreatedAt, "an existing creation time is kept")
}

func TestPostGroupAndAuthor(t *testing.T) {
	post := &Post{ID: 1, Text: "text", AuthorID: 7}

	t.Run("set group", func(t *testing.T) {
		post.SetGroup(&Group{ID: 3, Slug: "cats"})
		assert.True(t, post.InGroup(3))
		assert.False(t, post.InGroup(4))
		assert.Equal(t, "cats", post.Group.Slug)
	})

	t.Run("clear group", func(t *testing.T) {
		post.SetGroup(nil)
		assert.Nil(t, post.GroupID)
		assert.Nil(t, post.Group)
		assert.False(t, post.InGroup(3))
	})

	t.Run("authorship", func(t *testing.T) {
		assert.True(t, post.IsAuthor(&User{ID: 7}))
		assert.False(t, post.IsAuthor(&User{ID: 8}))
		assert.False(t, post.IsAuthor(nil))
	})
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []*Post{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base},
		{ID: 4, CreatedAt: base.Add(-time.Hour)},
	}

	SortNewestFirst(posts)

	var ids []uint64
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []uint64{2, 3, 1, 4}, ids)
}
