// Package store keeps the REPL history in a bbolt database.
package store

import (
	"time"

	bolt "go.etcd.io/bbolt"
	"src.frdlisp.dev/pkg/logutil"
	"src.frdlisp.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DBStore is the permanent storage backend for the REPL.
type DBStore interface {
	storedefs.Store
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database at the given path, creating it if needed, and
// returns a Store backed by it. Opening fails after one second if another
// process holds the database.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB, initializing the buckets
// it needs.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				logger.Printf("failed to %s: %v", name, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
