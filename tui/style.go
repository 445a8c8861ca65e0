package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleCrit = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleEnding = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindCombat
	kindCrit
	kindReward
	kindEnding
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "=== Ending:"):
		return kindEnding
	case strings.HasPrefix(line, "Critical hit"):
		return kindCrit
	case strings.HasPrefix(line, "You found"),
		strings.Contains(line, "dropped"),
		strings.HasPrefix(line, "You defeated"):
		return kindReward
	case strings.HasPrefix(line, "You attack"),
		strings.HasPrefix(line, "You cast"),
		strings.Contains(line, "hits you"),
		strings.Contains(line, "misses"),
		strings.Contains(line, "snatches"),
		strings.Contains(line, "breathes fire"):
		return kindCombat
	case strings.HasPrefix(line, "Not enough"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "No usable"):
		return kindError
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindCrit:
		return styleCrit.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindEnding:
		return styleEnding.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
