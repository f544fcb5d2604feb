package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/jot/internal/model"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/store/filelock"
)

// JSON-backed storage. Single file, human-readable, portable.
// The file is locked through a "<path>.lock" sidecar for as long as a Store
// is open, so overlapping invocations run their load-modify-save one at a time.

// Store is a file-backed store.Store.
type Store struct {
	path   string
	lock   *filelock.Lock
	coll   *store.Collection
	logger *log.Logger
}

var _ store.Store = (*Store)(nil)

// Open locks path and loads it. A missing file is an empty store.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	lk, err := filelock.Acquire(path + ".lock")
	if err != nil {
		return nil, &store.IOError{Op: "lock", Path: path, Err: err}
	}
	coll, err := Load(path)
	if err != nil {
		_ = lk.Release()
		logger.Error("failed to load todos", "path", path, "err", err)
		return nil, err
	}
	logger.Debug("todos loaded", "path", path, "count", len(coll.Todos), "next_index", coll.NextIndex)
	return &Store{path: path, lock: lk, coll: coll, logger: logger}, nil
}

func (s *Store) Create(_ context.Context, title string) (model.Todo, error) {
	prev := s.checkpoint()
	t, err := s.coll.Add(title)
	if err != nil {
		return model.Todo{}, err
	}
	if err := s.save(); err != nil {
		s.coll = prev
		return model.Todo{}, err
	}
	s.logger.Debug("todo created", "index", t.Index, "title", t.Title)
	return t, nil
}

func (s *Store) Complete(_ context.Context, index int) (model.Todo, error) {
	prev := s.checkpoint()
	t, changed, err := s.coll.Complete(index)
	if err != nil {
		return model.Todo{}, err
	}
	if !changed {
		return t, nil
	}
	if err := s.save(); err != nil {
		s.coll = prev
		return model.Todo{}, err
	}
	s.logger.Debug("todo completed", "index", t.Index)
	return t, nil
}

func (s *Store) List(context.Context) ([]model.Todo, error) {
	return s.coll.Snapshot(), nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	if err := s.lock.Release(); err != nil {
		return &store.IOError{Op: "unlock", Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) save() error {
	if err := Save(s.path, s.coll); err != nil {
		s.logger.Error("failed to save todos", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("todos saved", "path", s.path, "count", len(s.coll.Todos))
	return nil
}

// checkpoint copies the collection so a failed save can be rolled back.
func (s *Store) checkpoint() *store.Collection {
	return &store.Collection{NextIndex: s.coll.NextIndex, Todos: slices.Clone(s.coll.Todos)}
}

// Load reads a collection from path without locking.
func Load(path string) (*store.Collection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store.NewCollection(), nil
		}
		return nil, &store.IOError{Op: "read", Path: path, Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return store.NewCollection(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var c store.Collection
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrCorruptState, path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: %s: trailing data after todo state", store.ErrCorruptState, path)
	}
	if err := c.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Save writes c to path through a temp file and rename, so readers never see
// a partially written file.
func Save(path string, c *store.Collection) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &store.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &store.IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return &store.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &store.IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &store.IOError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return &store.IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &store.IOError{Op: "rename", Path: path, Err: err}
	}
	success = true
	return nil
}
