package services

import (
	"errors"

	"yatube/app/models"
)

// ErrForbidden is returned when the caller may not perform a mutation.
var ErrForbidden = errors.New("forbidden")

// CanCreate reports whether caller may publish posts. Any signed-in user may.
func CanCreate(caller *models.User) bool {
	return caller != nil && caller.ID != 0
}

// CanEdit reports whether caller may edit post: only its author can.
func CanEdit(caller *models.User, post *models.Post) bool {
	return CanCreate(caller) && post != nil && post.IsAuthor(caller)
}
