package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no todo has the requested index.
	ErrNotFound = errors.New("todo not found")
	// ErrCorruptState is returned when the backing file cannot be parsed.
	ErrCorruptState = errors.New("corrupt todo state")
	// ErrIO matches every *IOError.
	ErrIO = errors.New("storage i/o failure")
	// ErrEmptyTitle is returned by Create for blank titles.
	ErrEmptyTitle = errors.New("empty title")
	// ErrNotImplemented marks features that exist in the command surface only.
	ErrNotImplemented = errors.New("not implemented")
)

// IOError records a failed read, write or lock on the backing storage.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any *IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }
