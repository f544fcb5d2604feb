// Package tui is the interactive todo browser behind `jot todos ls -i`.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/jot/internal/model"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/ui"
)

// todoItem adapts model.Todo to list.Item.
type todoItem struct {
	todo model.Todo
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Title }

type styles struct {
	box, done, muted, selected, success, err, help, title lipgloss.Style
}

func newStyles(t ui.Theme) styles {
	return styles{
		box:      lipgloss.NewStyle().Border(t.Border).BorderForeground(t.Muted).Padding(0, 1),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		success:  lipgloss.NewStyle().Foreground(t.Success),
		err:      lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
		title:    lipgloss.NewStyle().Bold(true),
	}
}

// itemDelegate renders each todo on a single line.
type itemDelegate struct {
	theme  ui.Theme
	styles styles
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	box := d.styles.muted.Render(d.theme.BoxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = d.styles.success.Render(d.theme.BoxChecked)
		text = d.styles.done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, d.styles.muted.Render(fmt.Sprintf("%3d.", it.todo.Index)), box, text)
}

type keyMap struct {
	complete, add, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		complete: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model. Every change goes straight through the
// store, so quitting never loses work.
type Model struct {
	ctx    context.Context
	store  store.Store
	theme  ui.Theme
	styles styles
	keys   keyMap

	list list.Model

	// Inline add
	adding bool
	ti     textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds a browser over todos, which must come from s.
func New(ctx context.Context, s store.Store, todos []model.Todo, theme ui.Theme) Model {
	st := newStyles(theme)
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{todo: t})
	}

	keys := newKeyMap()
	l := list.New(items, itemDelegate{theme: theme, styles: st}, 80, 20)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = st.title
	l.Styles.HelpStyle = st.help
	l.Styles.PaginationStyle = st.help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	extra := func() []key.Binding { return []key.Binding{keys.complete, keys.add} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	m := Model{
		ctx:    ctx,
		store:  s,
		theme:  theme,
		styles: st,
		keys:   keys,
		list:   l,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.refreshTitle()
	return m
}

// Run starts the browser on the alternate screen.
func Run(ctx context.Context, s store.Store, theme ui.Theme) error {
	todos, err := s.List(ctx)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(New(ctx, s, todos, theme), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Todos returns the todos currently shown, in list order.
func (m Model) Todos() []model.Todo {
	out := make([]model.Todo, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if ti, ok := it.(todoItem); ok {
			out = append(out, ti.todo)
		}
	}
	return out
}

// Status returns the last status line and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, m.keys.quit):
			if m.list.FilterState() == list.FilterApplied && km.String() == "esc" {
				break
			}
			return m, tea.Quit
		case key.Matches(km, m.keys.complete):
			m.completeSelected()
			return m, nil
		case key.Matches(km, m.keys.add):
			m.adding = true
			m.ti.SetValue("")
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.setStatus("Title cannot be empty", true)
				return m, nil
			}
			t, err := m.store.Create(m.ctx, title)
			if err != nil {
				m.setStatus("add: "+err.Error(), true)
				return m, nil
			}
			cmd := m.list.InsertItem(len(m.list.Items()), todoItem{todo: t})
			m.stopAdding()
			m.setStatus(fmt.Sprintf("added [%d] %s", t.Index, t.Title), false)
			return m, cmd
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) completeSelected() {
	sel, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return
	}
	if sel.todo.Completed {
		m.setStatus(fmt.Sprintf("[%d] is already completed", sel.todo.Index), false)
		return
	}
	t, err := m.store.Complete(m.ctx, sel.todo.Index)
	if err != nil {
		m.setStatus("complete: "+err.Error(), true)
		return
	}
	for i, it := range m.list.Items() {
		if ti, ok := it.(todoItem); ok && ti.todo.Index == t.Index {
			m.list.SetItem(i, todoItem{todo: t})
			break
		}
	}
	m.setStatus(fmt.Sprintf("completed [%d] %s", t.Index, t.Title), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
	m.refreshTitle()
}

func (m *Model) refreshTitle() {
	d, p := model.Stats(m.Todos())
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d", m.theme.SymDone, d, m.theme.SymPending, p)
}

func (m *Model) resize() {
	h := m.height - 5
	if m.adding {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := m.styles.box
		content += "\n" + bar.Render("Add new todo\n"+m.ti.View())
	}
	if m.status != "" {
		style := m.styles.success
		if m.statusErr {
			style = m.styles.err
		}
		content += "\n" + style.Render(m.status)
	}
	return m.styles.box.Render(content)
}
