package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Index lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string

	Border lipgloss.Border
	Rule   string

	// Plain disables colour and text attributes entirely.
	Plain bool
}

// ThemeByName returns the named theme; unknown names get classic.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
			Index:        lipgloss.Color("14"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
			Border: lipgloss.RoundedBorder(),
			Rule:   "─",
		}
	case "mono":
		none := lipgloss.NoColor{}
		return Theme{
			Name:  "mono",
			Title: none, Muted: none, Accent: none,
			Success: none, Error: none, Pending: none, Index: none,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-", SymOK: "ok:", SymFail: "error:",
			Border: lipgloss.ASCIIBorder(),
			Rule:   "-",
			Plain:  true,
		}
	default:
		return Theme{
			Name:  "classic",
			Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
			Success: lipgloss.Color("2"), Error: lipgloss.Color("1"), Pending: lipgloss.Color("3"),
			Index:        lipgloss.Color("4"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•", SymOK: "✔", SymFail: "✖",
			Border: lipgloss.NormalBorder(),
			Rule:   "─",
		}
	}
}
