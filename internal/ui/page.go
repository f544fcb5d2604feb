package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/idilsaglam/jot/internal/model"
)

// HomePage prints the summary, a divider and the todo table. With a known
// width (> 0) the divider spans it and the table is centred; otherwise the
// divider is omitted.
func (u *UI) HomePage(todos []model.Todo, width int) {
	lines := []string{
		u.Summary(todos),
		u.styles.muted.Render(ProgressBar(countDone(todos), len(todos), 28)),
	}
	if width > 0 {
		lines = append(lines, u.styles.muted.Render(strings.Repeat(u.theme.Rule, width)))
	}
	tbl := u.Table(todos)
	if width > 0 {
		tbl = u.r.PlaceHorizontal(width, lipgloss.Center, tbl)
	}
	lines = append(lines, tbl)
	if len(todos) == 0 {
		lines = append(lines, u.styles.muted.Render("No todos yet. Add one with `jot todos new <title>`."))
	}
	fmt.Fprintln(u.out, strings.Join(lines, "\n"))
}

// Listing prints todos inside a framed panel, flat or grouped.
func (u *UI) Listing(todos []model.Todo, group bool) {
	lines := []string{
		u.Summary(todos),
		u.styles.muted.Render(ProgressBar(countDone(todos), len(todos), 28)),
		"",
	}
	if group {
		lines = append(lines, u.Grouped(todos))
	} else {
		lines = append(lines, u.Table(todos))
	}
	lines = append(lines, "", u.styles.muted.Render("Tip: add with `jot todos new \"Buy milk\"`"))
	u.Panel(lines)
}

// Panel draws a framed box using the current theme.
func (u *UI) Panel(lines []string) {
	box := u.r.NewStyle().
		Border(u.theme.Border).
		BorderForeground(u.theme.Muted).
		Padding(0, 1)
	fmt.Fprintln(u.out, box.Render(strings.Join(lines, "\n")))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// TerminalWidth reports the width of f, or 0 when it is not a terminal or
// the size cannot be read.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

func countDone(todos []model.Todo) int {
	d, _ := model.Stats(todos)
	return d
}
