package repositories

import (
	"fmt"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		var author models.User
		if err := getEntity(txn, entityKey(UserKeyPrefix, post.AuthorID), &author); err != nil {
			return fmt.Errorf("author %d: %w", post.AuthorID, err)
		}
		if post.GroupID != nil {
			var group models.Group
			if err := getEntity(txn, entityKey(GroupKeyPrefix, *post.GroupID), &group); err != nil {
				return fmt.Errorf("group %d: %w", *post.GroupID, err)
			}
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(PostKeyPrefix, post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id uint64) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post matching filter, newest first
func (r *BadgerPostRepository) List(filter PostFilter) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.scan(filter, func(post *models.Post) {
		posts = append(posts, post)
	})
	if err != nil {
		return nil, err
	}
	models.SortNewestFirst(posts)
	return posts, nil
}

// Count returns the number of posts matching filter
func (r *BadgerPostRepository) Count(filter PostFilter) (int, error) {
	count := 0
	err := r.scan(filter, func(*models.Post) {
		count++
	})
	return count, err
}

func (r *BadgerPostRepository) scan(filter PostFilter, fn func(*models.Post)) error {
	return r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			if filter.Matches(&post) {
				fn(&post)
			}
		}
		return nil
	})
}

// Update replaces the text and group of an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)

		var existing models.Post
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}
		// Authorship and creation time never change.
		post.AuthorID = existing.AuthorID
		post.CreatedAt = existing.CreatedAt
		if post.GroupID != nil {
			var group models.Group
			if err := getEntity(txn, entityKey(GroupKeyPrefix, *post.GroupID), &group); err != nil {
				return fmt.Errorf("group %d: %w", *post.GroupID, err)
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}
