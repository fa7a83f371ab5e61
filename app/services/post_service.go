package services

import (
	"errors"
	"fmt"
	"time"

	"yatube/app/forms"
	"yatube/app/models"
	"yatube/app/paginator"
	"yatube/app/repositories"
)

// FeedPage is one page of posts, newest first.
type FeedPage = paginator.Page[*models.Post]

// GroupFeed is a group and a page of the posts filed under it.
type GroupFeed struct {
	Group *models.Group
	Page  FeedPage
}

// AuthorFeed is an author, a page of their posts and their total post count.
type AuthorFeed struct {
	Author     *models.User
	PostsCount int
	Page       FeedPage
}

// PostDetail is a single post and its author's total post count.
type PostDetail struct {
	Post             *models.Post
	AuthorPostsCount int
}

// PostService handles reading and writing posts.
type PostService struct {
	postRepo  repositories.PostRepository
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
	now       func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// ListAll returns page number of the global feed.
func (s *PostService) ListAll(page int) (FeedPage, error) {
	return s.feed(repositories.PostFilter{}, page)
}

// ListByGroup returns the group with the given slug and a page of its posts.
func (s *PostService) ListByGroup(slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}
	feed, err := s.feed(repositories.PostFilter{GroupID: group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: feed}, nil
}

// ListByAuthor returns the user with the given username, a page of their
// posts and the number of posts they have written in total.
func (s *PostService) ListByAuthor(username string, page int) (*AuthorFeed, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", username, err)
	}
	feed, err := s.feed(repositories.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}
	return &AuthorFeed{Author: author, PostsCount: feed.Count, Page: feed}, nil
}

// GetPost returns a post with its author and group resolved.
func (s *PostService) GetPost(id uint64) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	if err := s.resolve([]*models.Post{post}); err != nil {
		return nil, err
	}
	count, err := s.postRepo.Count(repositories.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("failed to count posts of author %d: %w", post.AuthorID, err)
	}
	return &PostDetail{Post: post, AuthorPostsCount: count}, nil
}

// Groups lists every group, for the group choice on the post form.
func (s *PostService) Groups() ([]*models.Group, error) {
	return s.groupRepo.List()
}

// GroupLookup exposes group lookups to form validation.
func (s *PostService) GroupLookup() forms.GroupLookup {
	return s.groupRepo
}

// CreatePost publishes a new post written by author.
func (s *PostService) CreatePost(author *models.User, payload forms.PostPayload) (*models.Post, error) {
	if !CanCreate(author) {
		return nil, ErrForbidden
	}
	post := &models.Post{
		Text:      payload.Text,
		AuthorID:  author.ID,
		GroupID:   payload.GroupID,
		CreatedAt: s.now(),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// EditablePost returns the post with the given id if caller may edit it.
// Unknown ids yield ErrNotFound before access is checked.
func (s *PostService) EditablePost(caller *models.User, id uint64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	if !CanEdit(caller, post) {
		return post, ErrForbidden
	}
	return post, nil
}

// UpdatePost replaces the text and group of a post. Author and creation
// time are never touched.
func (s *PostService) UpdatePost(caller *models.User, id uint64, payload forms.PostPayload) (*models.Post, error) {
	post, err := s.EditablePost(caller, id)
	if err != nil {
		return nil, err
	}
	post.Text = payload.Text
	post.GroupID = payload.GroupID
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

func (s *PostService) feed(filter repositories.PostFilter, number int) (FeedPage, error) {
	posts, err := s.postRepo.List(filter)
	if err != nil {
		return FeedPage{}, fmt.Errorf("failed to list posts: %w", err)
	}
	page := paginator.Paginate(posts, paginator.PerPage, number)
	if err := s.resolve(page.Items); err != nil {
		return FeedPage{}, err
	}
	return page, nil
}

// resolve attaches authors and groups to posts, loading each one once.
func (s *PostService) resolve(posts []*models.Post) error {
	authors := make(map[uint64]*models.User)
	groups := make(map[uint64]*models.Group)

	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			var err error
			author, err = s.userRepo.GetByID(post.AuthorID)
			if err != nil {
				return fmt.Errorf("failed to load author %d of post %d: %w", post.AuthorID, post.ID, err)
			}
			authors[post.AuthorID] = author
		}
		post.Author = author

		if post.GroupID == nil {
			post.Group = nil
			continue
		}
		group, ok := groups[*post.GroupID]
		if !ok {
			var err error
			group, err = s.groupRepo.GetByID(*post.GroupID)
			if errors.Is(err, repositories.ErrNotFound) {
				// Group rows are never deleted; show the post ungrouped if one is missing.
				group = nil
			} else if err != nil {
				return fmt.Errorf("failed to load group %d of post %d: %w", *post.GroupID, post.ID, err)
			}
			groups[*post.GroupID] = group
		}
		post.Group = group
	}
	return nil
}
