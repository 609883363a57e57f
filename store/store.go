// Package store persists named collections of JSON documents.
//
// A collection is always read and written as a whole. Backends implement
// Store; services reach them through the typed Collection wrapper, which
// serialises load-mutate-save cycles per collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrCollectionMissing is returned when a backend has no data for a collection.
// It is a configuration problem, never an empty result.
var ErrCollectionMissing = errors.New("collection missing")

// Store loads and replaces whole collections.
type Store interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Save(ctx context.Context, collection string, records []json.RawMessage) error
}

// Lister is implemented by backends that can enumerate their collections.
type Lister interface {
	Names(ctx context.Context) ([]string, error)
}

// Collection names used by the content API.
const (
	Categories = "categories"
	Routes     = "routes"
	Courses    = "courses"
	Classes    = "classes"
	Teachers   = "teachers"
	Users      = "users"
	Glossary   = "glossary"
	Projects   = "projects"
	Comments   = "comments"
	Blogs      = "blogs"
	Forums     = "forums"
	Tutorials  = "tutorials"
)

// AllCollections lists every collection in a fixed order.
var AllCollections = []string{
	Categories, Routes, Courses, Classes, Teachers, Users,
	Glossary, Projects, Comments, Blogs, Forums, Tutorials,
}

// Locks hands out one mutex per collection name.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock acquires the named collection's mutex and returns its release func.
func (l *Locks) Lock(name string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// DB binds a Store to the lock table shared by every Collection opened on it.
type DB struct {
	store Store
	locks *Locks
}

// NewDB wraps a backend.
func NewDB(s Store) *DB {
	return &DB{store: s, locks: &Locks{}}
}

// Store returns the underlying backend.
func (db *DB) Store() Store {
	return db.store
}

// Collection is a typed view over one named collection.
type Collection[T any] struct {
	db   *DB
	name string
}

// Open returns the typed collection called name.
func Open[T any](db *DB, name string) Collection[T] {
	return Collection[T]{db: db, name: name}
}

// Name returns the collection name.
func (c Collection[T]) Name() string {
	return c.name
}

// All decodes every record of the collection in stored order.
func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	raw, err := c.db.store.Load(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	return decode[T](c.name, raw)
}

// Mutate loads the collection, hands it to fn and saves what fn returns.
// The whole cycle holds the collection lock. Nothing is written when fn
// returns an error.
func (c Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	unlock := c.db.locks.Lock(c.name)
	defer unlock()

	records, err := c.All(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	raw, err := encode(c.name, next)
	if err != nil {
		return err
	}
	if err := c.db.store.Save(ctx, c.name, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func decode[T any](name string, raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func encode[T any](name string, records []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode %s[%d]: %w", name, i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
