// Package ui renders todos and command feedback.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// UI writes styled output. Colour is decided per writer: output that is not
// a terminal (or a plain theme, or NO_COLOR) gets no escape codes.
type UI struct {
	out, err io.Writer
	r        *lipgloss.Renderer
	theme    Theme
	styles   styles
	errStyle lipgloss.Style
}

type styles struct {
	title, header, index, yes, no, todo, muted, accent, success, pending, border lipgloss.Style
}

// New builds a UI for the given writers.
func New(out, errw io.Writer, theme Theme) *UI {
	r := renderer(out, theme)
	er := renderer(errw, theme)
	return &UI{
		out:   out,
		err:   errw,
		r:     r,
		theme: theme,
		styles: styles{
			title:   r.NewStyle().Bold(true).Foreground(theme.Title),
			header:  r.NewStyle().Italic(true).Underline(true).Padding(0, 1),
			index:   r.NewStyle().Foreground(theme.Index),
			yes:     r.NewStyle().Foreground(theme.Success),
			no:      r.NewStyle().Foreground(theme.Error),
			todo:    r.NewStyle().Bold(true),
			muted:   r.NewStyle().Foreground(theme.Muted),
			accent:  r.NewStyle().Foreground(theme.Accent),
			success: r.NewStyle().Foreground(theme.Success),
			pending: r.NewStyle().Foreground(theme.Pending),
			border:  r.NewStyle().Foreground(theme.Muted),
		},
		errStyle: er.NewStyle().Foreground(theme.Error).Bold(true),
	}
}

func renderer(w io.Writer, theme Theme) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if theme.Plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Out is the writer normal output goes to.
func (u *UI) Out() io.Writer { return u.out }

// Theme returns the active theme.
func (u *UI) Theme() Theme { return u.theme }

func (u *UI) OK(msg string) {
	fmt.Fprintln(u.out, u.styles.success.Render(u.theme.SymOK+" "+msg))
}

func (u *UI) Fail(msg string) {
	fmt.Fprintln(u.err, u.errStyle.Render(u.theme.SymFail+" "+msg))
}

// Hint prints a muted line on the error writer.
func (u *UI) Hint(msg string) {
	fmt.Fprintln(u.err, u.errStyle.UnsetBold().UnsetForeground().Faint(true).Render(msg))
}

func (u *UI) Println(s string) {
	fmt.Fprintln(u.out, s)
}
