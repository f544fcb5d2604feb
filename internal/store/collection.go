package store

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/idilsaglam/jot/internal/model"
)

// Collection is the in-memory form of a file-backed store.
// NextIndex is persisted with the todos so indices survive restarts.
type Collection struct {
	NextIndex int          `json:"next_index"`
	Todos     []model.Todo `json:"todos"`
}

// NewCollection returns an empty collection whose first index is 1.
func NewCollection() *Collection {
	return &Collection{NextIndex: 1, Todos: []model.Todo{}}
}

// Normalize sorts todos by index, rejects duplicates and raises NextIndex
// above the highest stored index. It never lowers NextIndex.
func (c *Collection) Normalize() error {
	if c.Todos == nil {
		c.Todos = []model.Todo{}
	}
	slices.SortFunc(c.Todos, func(a, b model.Todo) int { return cmp.Compare(a.Index, b.Index) })
	maxIndex := 0
	for i, t := range c.Todos {
		if t.Index < 1 {
			return fmt.Errorf("%w: invalid index %d", ErrCorruptState, t.Index)
		}
		if i > 0 && c.Todos[i-1].Index == t.Index {
			return fmt.Errorf("%w: duplicate index %d", ErrCorruptState, t.Index)
		}
		maxIndex = t.Index
	}
	if maxIndex == math.MaxInt {
		return fmt.Errorf("%w: index space exhausted", ErrCorruptState)
	}
	if c.NextIndex <= maxIndex {
		c.NextIndex = maxIndex + 1
	}
	if c.NextIndex < 1 {
		c.NextIndex = 1
	}
	return nil
}

// Add appends a new incomplete todo under the next index.
func (c *Collection) Add(title string) (model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, ErrEmptyTitle
	}
	if c.NextIndex >= math.MaxInt {
		return model.Todo{}, fmt.Errorf("%w: index space exhausted", ErrCorruptState)
	}
	t := model.Todo{Index: c.NextIndex, Title: title}
	c.NextIndex++
	c.Todos = append(c.Todos, t)
	return t, nil
}

// Complete marks the todo at index completed. changed reports whether the
// collection was modified, so callers can skip a save on repeats.
func (c *Collection) Complete(index int) (t model.Todo, changed bool, err error) {
	i, ok := c.find(index)
	if !ok {
		return model.Todo{}, false, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	if c.Todos[i].Completed {
		return c.Todos[i], false, nil
	}
	c.Todos[i].Completed = true
	return c.Todos[i], true, nil
}

// Snapshot returns a copy of the todos in ascending index order.
func (c *Collection) Snapshot() []model.Todo {
	return slices.Clone(c.Todos)
}

func (c *Collection) find(index int) (int, bool) {
	return slices.BinarySearchFunc(c.Todos, index, func(t model.Todo, idx int) int { return cmp.Compare(t.Index, idx) })
}
