package repositories

import (
	"fmt"
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB
type BadgerGroupRepository struct {
	db *badger.DB
}

// NewBadgerGroupRepository creates a new BadgerGroupRepository
func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create stores a new group. The slug must be unused.
func (r *BadgerGroupRepository) Create(group *models.Group) error {
	group.BeforeCreate()
	if err := group.Validate(); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		if err := reserveIndex(txn, GroupSlugIndexPrefix+group.Slug, id); err != nil {
			return fmt.Errorf("slug %q: %w", group.Slug, err)
		}
		group.ID = id

		data, err := marshalEntity(group)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(GroupKeyPrefix, group.ID), data)
	})
}

// GetByID retrieves a group by ID
func (r *BadgerGroupRepository) GetByID(id uint64) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group by its slug
func (r *BadgerGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, GroupSlugIndexPrefix+slug)
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(GroupKeyPrefix, id), &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns every group ordered by title
func (r *BadgerGroupRepository) List() ([]*models.Group, error) {
	groups := []*models.Group{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(GroupKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var group models.Group
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &group)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal group: %w", err)
			}
			groups = append(groups, &group)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Title != groups[j].Title {
			return groups[i].Title < groups[j].Title
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}
