// Package store caches built structural trees in a bbolt database, keyed by
// source content hash so identical inputs are never rebuilt.
package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"lstq/lst"
)

var (
	bucketTrees = []byte("trees")
	bucketPaths = []byte("paths")
)

// Store is a content-addressed tree cache.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTrees, bucketPaths} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a tree under its source hash and records the path -> hash link.
func (s *Store) Put(tree *lst.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketTrees).Put([]byte(tree.SourceHash), data); err != nil {
			return err
		}
		return tx.Bucket(bucketPaths).Put([]byte(tree.File), []byte(tree.SourceHash))
	})
}

// Has reports whether a tree with the given source hash is cached.
func (s *Store) Has(hash string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketTrees).Get([]byte(hash)) != nil
		return nil
	})
	return found, err
}

// GetByHash loads a cached tree by source hash.
func (s *Store) GetByHash(hash string) (*lst.Tree, error) {
	var tree *lst.Tree
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTrees).Get([]byte(hash))
		if data == nil {
			return fmt.Errorf("tree not cached: %s", hash)
		}
		tree = &lst.Tree{}
		return json.Unmarshal(data, tree)
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// GetByPath loads the most recently cached tree for a source path.
func (s *Store) GetByPath(path string) (*lst.Tree, error) {
	var hash []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		hash = tx.Bucket(bucketPaths).Get([]byte(path))
		if hash == nil {
			return fmt.Errorf("no cached tree for path: %s", path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByHash(string(hash))
}

// Len returns the number of cached trees.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketTrees).Stats().KeyN
		return nil
	})
	return n, err
}
