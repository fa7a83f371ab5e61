package models

import (
	"strings"
	"time"
)

// Validate checks the user's fields against the model tags.
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate normalises the user before it is stored.
func (u *User) BeforeCreate() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
}

// FullName is "First Last", falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
