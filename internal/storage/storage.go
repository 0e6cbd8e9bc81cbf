package storage

import (
	"encoding/json"
	"strings"

	"github.com/dgraph-io/badger/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/vasrot/jyardchess/internal/board"
)

const gameKeyPrefix = "game:"

// ErrNotFound reports that no game exists under the requested id.
var ErrNotFound = pkgerrors.New("game not found")

// Store wraps BadgerDB for persistent game storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir selects the
// platform default data directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DatabaseDir()
		if err != nil {
			return nil, pkgerrors.Wrap(err, "resolve database dir")
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open database")
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gameKeyPrefix + id)
}

// SaveGame persists the snapshot under the game id, overwriting any
// previous state of that game.
func (s *Store) SaveGame(id string, snapshot *board.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(err, "encode snapshot")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(id), data)
	})
}

// LoadGame retrieves the snapshot stored under the game id. A missing
// id yields ErrNotFound, never a zero snapshot.
func (s *Store) LoadGame(id string) (*board.Snapshot, error) {
	var snapshot board.Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// DeleteGame removes the game. Deleting an unknown id is not an error.
func (s *Store) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns the ids of all stored games.
func (s *Store) ListGames() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, gameKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
