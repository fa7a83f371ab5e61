package repositories

import (
	"errors"
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store bundles the repositories the application needs, whatever backs them.
type Store struct {
	Users  UserRepository
	Groups GroupRepository
	Posts  PostRepository

	closer func() error
}

// NewStore assembles a Store from repositories. closer may be nil.
func NewStore(users UserRepository, groups GroupRepository, posts PostRepository, closer func() error) *Store {
	return &Store{Users: users, Groups: groups, Posts: posts, closer: closer}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// OpenBadger opens the badger database at path. An empty path opens an
// in-memory database, which is what tests use.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerStore wires the badger repositories over an open database.
// Closing the store closes db.
func NewBadgerStore(db *badger.DB) *Store {
	return NewStore(
		NewBadgerUserRepository(db),
		NewBadgerGroupRepository(db),
		NewBadgerPostRepository(db),
		db.Close,
	)
}

// Backup writes a full badger backup to w.
func Backup(db *badger.DB, w io.Writer) error {
	if _, err := db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup into db.
func Restore(db *badger.DB, r io.Reader) error {
	if err := db.Load(r, 16); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Clear drops every key. Used by the clean command and tests.
func Clear(db *badger.DB) error {
	return db.DropAll()
}
