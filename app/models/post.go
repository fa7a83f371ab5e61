package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Text = strings.TrimSpace(p.Text)
}

// SetGroup files the post under g, or clears the group when g is nil.
func (p *Post) SetGroup(g *Group) {
	p.Group = g
	if g == nil {
		p.GroupID = nil
		return
	}
	id := g.ID
	p.GroupID = &id
}

// InGroup reports whether the post is filed under the group with the given id.
func (p *Post) InGroup(groupID uint64) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}

// IsAuthor reports whether u wrote the post. A nil user is never the author.
func (p *Post) IsAuthor(u *User) bool {
	return u != nil && u.ID != 0 && u.ID == p.AuthorID
}

// SortNewestFirst orders posts by creation time, newest first. Posts created
// at the same instant keep a stable order by descending id.
func SortNewestFirst(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
