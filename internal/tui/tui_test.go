package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/jot/internal/model"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/ui"
)

// memStore is an in-memory store.Store backed by a Collection.
type memStore struct {
	coll    *store.Collection
	failErr error
}

func (s *memStore) Create(_ context.Context, title string) (model.Todo, error) {
	if s.failErr != nil {
		return model.Todo{}, s.failErr
	}
	return s.coll.Add(title)
}

func (s *memStore) Complete(_ context.Context, index int) (model.Todo, error) {
	if s.failErr != nil {
		return model.Todo{}, s.failErr
	}
	t, _, err := s.coll.Complete(index)
	return t, err
}

func (s *memStore) List(context.Context) ([]model.Todo, error) { return s.coll.Snapshot(), nil }
func (s *memStore) Close() error                               { return nil }

func newTestModel(t *testing.T, titles ...string) (Model, *memStore) {
	t.Helper()
	s := &memStore{coll: store.NewCollection()}
	for _, title := range titles {
		if _, err := s.coll.Add(title); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return New(context.Background(), s, s.coll.Snapshot(), ui.ThemeByName("mono")), s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestSpaceCompletesSelectedTodo(t *testing.T) {
	m, s := newTestModel(t, "Wash dishes", "Fetch laundry in")

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	stored := s.coll.Snapshot()
	if !stored[0].Completed || stored[1].Completed {
		t.Fatalf("store state = %+v, want only first completed", stored)
	}
	if shown := m.Todos(); !shown[0].Completed {
		t.Fatalf("list not updated: %+v", shown)
	}
	if status, isErr := m.Status(); isErr || !strings.Contains(status, "completed [1]") {
		t.Fatalf("status = %q (err %v)", status, isErr)
	}
}

func TestCompleteIsOneWay(t *testing.T) {
	m, s := newTestModel(t, "Wash dishes")
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeySpace})

	if !s.coll.Snapshot()[0].Completed {
		t.Fatalf("second space un-completed the todo")
	}
	if status, _ := m.Status(); !strings.Contains(status, "already completed") {
		t.Fatalf("status = %q", status)
	}
}

func TestInlineAddCreatesTodo(t *testing.T) {
	m, s := newTestModel(t, "Wash dishes")

	m = send(t, m, runes("a"), runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	stored := s.coll.Snapshot()
	if len(stored) != 2 || stored[1].Title != "Buy milk" || stored[1].Index != 2 {
		t.Fatalf("store state = %+v", stored)
	}
	shown := m.Todos()
	if len(shown) != 2 || shown[1].Title != "Buy milk" {
		t.Fatalf("list = %+v", shown)
	}
	if m.adding {
		t.Fatalf("still in add mode after enter")
	}
}

func TestInlineAddRejectsEmptyAndEscCancels(t *testing.T) {
	m, s := newTestModel(t)

	m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	if status, isErr := m.Status(); !isErr || !strings.Contains(status, "empty") {
		t.Fatalf("status = %q (err %v)", status, isErr)
	}
	if !m.adding {
		t.Fatalf("left add mode on empty title")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.adding {
		t.Fatalf("esc did not cancel add mode")
	}
	if len(s.coll.Snapshot()) != 0 {
		t.Fatalf("store changed: %+v", s.coll.Snapshot())
	}
}

func TestStoreErrorsShowInStatus(t *testing.T) {
	m, s := newTestModel(t, "Wash dishes")
	s.failErr = &store.IOError{Op: "write", Path: "/x", Err: errors.New("disk full")}

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	status, isErr := m.Status()
	if !isErr || !strings.Contains(status, "disk full") {
		t.Fatalf("status = %q (err %v)", status, isErr)
	}
	if m.Todos()[0].Completed {
		t.Fatalf("list shows completion that was not persisted")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, "Wash dishes")
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestViewShowsTodos(t *testing.T) {
	m, _ := newTestModel(t, "Wash dishes")
	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := m.View(); !strings.Contains(v, "Wash dishes") {
		t.Fatalf("view missing todo:\n%s", v)
	}
}
