package models

import "strings"

// Validate checks the group's fields against the model tags.
func (g *Group) Validate() error {
	return validate.Struct(g)
}

// BeforeCreate trims the editable fields.
func (g *Group) BeforeCreate() {
	g.Slug = strings.TrimSpace(g.Slug)
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
}

// TableName keeps the SQL table name clear of the GROUP keyword.
func (Group) TableName() string {
	return "post_groups"
}
