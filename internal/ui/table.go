package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/jot/internal/model"
)

const maxTitleWidth = 60

// Table renders todos as an Index | Completed | Todo table in the order
// given. An empty slice renders the header only.
func (u *UI) Table(todos []model.Todo) string {
	cell := u.r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(u.theme.Border).
		BorderStyle(u.styles.border).
		Headers("Index", "Completed", "Todo").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return u.styles.header
			}
			return cell
		})
	for _, td := range todos {
		done := u.styles.no.Render("no")
		if td.Completed {
			done = u.styles.yes.Render("yes")
		}
		t.Row(
			u.styles.index.Render(fmt.Sprintf("[%d]", td.Index)),
			done,
			u.styles.todo.Render(ansi.Truncate(td.Title, maxTitleWidth, "…")),
		)
	}
	return t.Render()
}

// Grouped renders pending todos and completed todos as two sections.
func (u *UI) Grouped(todos []model.Todo) string {
	var pending, done []model.Todo
	for _, td := range todos {
		if td.Completed {
			done = append(done, td)
		} else {
			pending = append(pending, td)
		}
	}
	section := func(name string, list []model.Todo) []string {
		lines := []string{u.styles.accent.Render(name)}
		if len(list) == 0 {
			return append(lines, u.styles.muted.Render("(none)"))
		}
		return append(lines, u.Table(list))
	}
	lines := section("Pending", pending)
	lines = append(lines, "")
	lines = append(lines, section("Done", done)...)
	return strings.Join(lines, "\n")
}

// Summary is the "Todos ✔ n • n Total n" header line.
func (u *UI) Summary(todos []model.Todo) string {
	d, p := model.Stats(todos)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		u.styles.title.Render("Todos"),
		u.styles.success.Render(u.theme.SymDone), d,
		u.styles.pending.Render(u.theme.SymPending), p,
		u.styles.accent.Render("Total"), len(todos),
	)
}
