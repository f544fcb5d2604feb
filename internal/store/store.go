// Package store defines the todo store contract shared by the backends.
package store

import (
	"context"

	"github.com/idilsaglam/jot/internal/model"
)

// Store owns the canonical collection of todos.
// Implementations hold an exclusive lock on their backing storage from the
// moment they are opened until Close.
type Store interface {
	// Create allocates the next unused index and persists a new incomplete todo.
	Create(ctx context.Context, title string) (model.Todo, error)
	// Complete marks the todo at index as completed. It fails with ErrNotFound
	// if the index is absent, leaving stored state untouched.
	Complete(ctx context.Context, index int) (model.Todo, error)
	// List returns all todos ordered ascending by index.
	List(ctx context.Context) ([]model.Todo, error)
	Close() error
}

// Opener opens a store. The cli package receives one instead of a path so
// tests and alternate backends plug in the same way.
type Opener func(ctx context.Context) (Store, error)

// With opens a store, runs fn and always closes it. A close error is only
// reported when fn succeeded.
func With(ctx context.Context, open Opener, fn func(Store) error) (err error) {
	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
