package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix  = "user:"
	GroupKeyPrefix = "group:"
	PostKeyPrefix  = "post:"

	// Unique lookup keys, value is the big-endian id
	UsernameIndexPrefix  = "idx:user:username:"
	GroupSlugIndexPrefix = "idx:group:slug:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey  = "seq:user"
	GroupSeqKey = "seq:group"
	PostSeqKey  = "seq:post"
)

func entityKey(prefix string, id uint64) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

func encodeID(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func decodeID(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("invalid id encoding of length %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (uint64, error) {
	var id uint64
	item, err := txn.Get([]byte(seqKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id, err = decodeID(val)
			return err
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	if err := txn.Set([]byte(seqKey), encodeID(id)); err != nil {
		return 0, err
	}

	return id, nil
}

// lookupIndex resolves a unique index key to the id it points at.
func lookupIndex(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id uint64
	err = item.Value(func(val []byte) error {
		id, err = decodeID(val)
		return err
	})
	return id, err
}

// reserveIndex claims a unique index key for id, failing with ErrDuplicate
// when another entity already holds it.
func reserveIndex(txn *badger.Txn, key string, id uint64) error {
	_, err := txn.Get([]byte(key))
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return txn.Set([]byte(key), encodeID(id))
}

// getEntity loads and unmarshals the value stored under key.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
