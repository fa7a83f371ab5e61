package mock

import (
	"fmt"
	"sort"
	"sync"

	"yatube/app/models"
	"yatube/app/repositories"
)

// Repositories hand out copies so callers can't mutate stored rows, the same
// way a real database behaves.

type UserRepository struct {
	users  map[uint64]*models.User
	nextID uint64
	mutex  sync.RWMutex
}

type GroupRepository struct {
	groups map[uint64]*models.Group
	nextID uint64
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts  map[uint64]*models.Post
	nextID uint64
	mutex  sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uint64]*models.User), nextID: 1}
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{groups: make(map[uint64]*models.Group), nextID: 1}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[uint64]*models.Post), nextID: 1}
}

// NewStore returns a Store backed by fresh in-memory repositories.
func NewStore() *repositories.Store {
	return repositories.NewStore(NewUserRepository(), NewGroupRepository(), NewPostRepository(), nil)
}

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(id uint64) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// GroupRepository implementation
func (m *GroupRepository) Create(group *models.Group) error {
	group.BeforeCreate()
	if err := group.Validate(); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, g := range m.groups {
		if g.Slug == group.Slug {
			return repositories.ErrDuplicate
		}
	}
	group.ID = m.nextID
	m.nextID++
	stored := *group
	m.groups[group.ID] = &stored
	return nil
}

func (m *GroupRepository) GetByID(id uint64) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	group, exists := m.groups[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *group
	return &out, nil
}

func (m *GroupRepository) GetBySlug(slug string) (*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, group := range m.groups {
		if group.Slug == slug {
			out := *group
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *GroupRepository) List() ([]*models.Group, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	groups := make([]*models.Group, 0, len(m.groups))
	for _, group := range m.groups {
		out := *group
		groups = append(groups, &out)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Title != groups[j].Title {
			return groups[i].Title < groups[j].Title
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = detach(post)
	return nil
}

func (m *PostRepository) GetByID(id uint64) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return detach(post), nil
}

func (m *PostRepository) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	m.posts[post.ID] = detach(post)
	return nil
}

func (m *PostRepository) List(filter repositories.PostFilter) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		if filter.Matches(post) {
			posts = append(posts, detach(post))
		}
	}
	models.SortNewestFirst(posts)
	return posts, nil
}

func (m *PostRepository) Count(filter repositories.PostFilter) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for _, post := range m.posts {
		if filter.Matches(post) {
			count++
		}
	}
	return count, nil
}

// Clear removes every post and resets the id sequence.
func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[uint64]*models.Post)
	m.nextID = 1
}

func detach(post *models.Post) *models.Post {
	out := *post
	out.Author = nil
	out.Group = nil
	if post.GroupID != nil {
		id := *post.GroupID
		out.GroupID = &id
	}
	return &out
}
