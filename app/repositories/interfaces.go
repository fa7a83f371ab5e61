package repositories

import "yatube/app/models"

// PostFilter narrows a post listing. Zero fields match everything.
type PostFilter struct {
	AuthorID uint64
	GroupID  uint64
}

// Matches reports whether p passes the filter.
func (f PostFilter) Matches(p *models.Post) bool {
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.GroupID != 0 && !p.InGroup(f.GroupID) {
		return false
	}
	return true
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id uint64) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]*models.Group, error)
}

// PostRepository defines the interface for post data access.
// List returns posts newest first (created_at DESC, id DESC).
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint64) (*models.Post, error)
	List(filter PostFilter) ([]*models.Post, error)
	Count(filter PostFilter) (int, error)
	Update(post *models.Post) error
}
