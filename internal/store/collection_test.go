package store

import (
	"errors"
	"math"
	"testing"

	"github.com/idilsaglam/jot/internal/model"
)

func TestCollectionAddAssignsIncreasingIndices(t *testing.T) {
	c := NewCollection()
	a, err := c.Add("  Wash dishes ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := c.Add("Fetch laundry in")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if a.Index != 1 || b.Index != 2 {
		t.Fatalf("indices = %d, %d; want 1, 2", a.Index, b.Index)
	}
	if a.Title != "Wash dishes" || a.Completed {
		t.Fatalf("first todo = %+v", a)
	}
	if c.NextIndex != 3 {
		t.Fatalf("NextIndex = %d, want 3", c.NextIndex)
	}
}

func TestCollectionAddRejectsEmptyTitle(t *testing.T) {
	c := NewCollection()
	if _, err := c.Add("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Add(blank) err = %v, want ErrEmptyTitle", err)
	}
	if c.NextIndex != 1 || len(c.Todos) != 0 {
		t.Fatalf("collection changed after rejected add: %+v", c)
	}
}

func TestCollectionCompleteUnknownIndex(t *testing.T) {
	c := NewCollection()
	_, _ = c.Add("one")
	before := c.Snapshot()

	_, changed, err := c.Complete(42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Complete(42) err = %v, want ErrNotFound", err)
	}
	if changed {
		t.Fatalf("Complete(42) reported a change")
	}
	if got := c.Snapshot(); len(got) != 1 || got[0] != before[0] {
		t.Fatalf("state changed: %+v", got)
	}
}

func TestCollectionCompleteIsIdempotent(t *testing.T) {
	c := NewCollection()
	_, _ = c.Add("one")

	first, changed, err := c.Complete(1)
	if err != nil || !changed || !first.Completed {
		t.Fatalf("first Complete = %+v, %v, %v", first, changed, err)
	}
	second, changed, err := c.Complete(1)
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if changed {
		t.Fatalf("second Complete reported a change")
	}
	if second != first {
		t.Fatalf("second = %+v, want %+v", second, first)
	}
}

func TestCollectionNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Collection
		wantNext  int
		wantErr   error
		wantFirst int
	}{
		{
			name:     "empty",
			in:       Collection{},
			wantNext: 1,
		},
		{
			name: "raises stale counter",
			in: Collection{NextIndex: 2, Todos: []model.Todo{
				{Index: 4, Title: "d"}, {Index: 1, Title: "a"},
			}},
			wantNext:  5,
			wantFirst: 1,
		},
		{
			name: "keeps higher counter",
			in: Collection{NextIndex: 10, Todos: []model.Todo{
				{Index: 3, Title: "c"},
			}},
			wantNext:  10,
			wantFirst: 3,
		},
		{
			name: "extreme indices",
			in: Collection{NextIndex: 1, Todos: []model.Todo{
				{Index: math.MaxInt - 1, Title: "b"}, {Index: 1, Title: "a"},
			}},
			wantNext:  math.MaxInt,
			wantFirst: 1,
		},
		{
			name:    "index space exhausted",
			in:      Collection{Todos: []model.Todo{{Index: math.MaxInt, Title: "max"}}},
			wantErr: ErrCorruptState,
		},
		{
			name: "min and max int",
			in: Collection{Todos: []model.Todo{
				{Index: math.MaxInt - 1, Title: "b"}, {Index: math.MinInt, Title: "a"},
			}},
			wantErr: ErrCorruptState,
		},
		{
			name: "duplicate index",
			in: Collection{NextIndex: 3, Todos: []model.Todo{
				{Index: 2, Title: "x"}, {Index: 2, Title: "y"},
			}},
			wantErr: ErrCorruptState,
		},
		{
			name:    "zero index",
			in:      Collection{Todos: []model.Todo{{Index: 0, Title: "x"}}},
			wantErr: ErrCorruptState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.in
			err := c.Normalize()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if c.NextIndex != tt.wantNext {
				t.Fatalf("NextIndex = %d, want %d", c.NextIndex, tt.wantNext)
			}
			if tt.wantFirst != 0 && c.Todos[0].Index != tt.wantFirst {
				t.Fatalf("first index = %d, want %d", c.Todos[0].Index, tt.wantFirst)
			}
		})
	}
}

func TestCollectionCompleteAtExtremeIndex(t *testing.T) {
	c := Collection{Todos: []model.Todo{
		{Index: math.MaxInt - 1, Title: "far"}, {Index: 2, Title: "near"},
	}}
	if err := c.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	got, changed, err := c.Complete(math.MaxInt - 1)
	if err != nil || !changed || got.Title != "far" {
		t.Fatalf("Complete(MaxInt-1) = %+v, %v, %v", got, changed, err)
	}
}

func TestCollectionAddRefusesExhaustedCounter(t *testing.T) {
	c := Collection{Todos: []model.Todo{{Index: math.MaxInt - 1, Title: "last"}}}
	if err := c.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, err := c.Add("one more"); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("Add at MaxInt: err = %v, want ErrCorruptState", err)
	}
	if len(c.Todos) != 1 || c.NextIndex != math.MaxInt {
		t.Fatalf("collection changed: %+v", c)
	}
}

func TestIOErrorMatchesErrIO(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&IOError{Op: "write", Path: "/tmp/x", Err: inner})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("errors.Is(IOError, ErrIO) = false")
	}
	if !errors.Is(err, inner) {
		t.Fatalf("IOError does not unwrap to its cause")
	}
	if got, want := err.Error(), "write /tmp/x: disk full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
