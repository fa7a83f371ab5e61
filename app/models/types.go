package models

import "time"

// User is an account that can author posts.
type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null" validate:"required,max=150,username"`
	FirstName    string    `json:"first_name" gorm:"size:150" validate:"max=150"`
	LastName     string    `json:"last_name" gorm:"size:150" validate:"max=150"`
	Email        string    `json:"email" gorm:"size:254" validate:"omitempty,max=254,email"`
	PasswordHash string    `json:"password_hash" gorm:"size:255;not null" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

// Group is a topic posts can optionally be filed under.
type Group struct {
	ID          uint64 `json:"id" gorm:"primaryKey"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:50;not null" validate:"required,max=50,slug"`
	Title       string `json:"title" gorm:"size:200;not null" validate:"notblank,max=200"`
	Description string `json:"description" gorm:"type:text"`
}

// Post is a single authored text entry.
type Post struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null" validate:"notblank"`
	CreatedAt time.Time `json:"created_at" gorm:"index" validate:"required"`
	AuthorID  uint64    `json:"author_id" gorm:"not null;index" validate:"required"`
	GroupID   *uint64   `json:"group_id,omitempty" gorm:"index"`

	// Resolved by the service layer for display, never persisted.
	Author *User  `json:"-" gorm:"foreignKey:AuthorID" validate:"-"`
	Group  *Group `json:"-" gorm:"foreignKey:GroupID" validate:"-"`
}
