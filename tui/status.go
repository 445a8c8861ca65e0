package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stageDisplayName derives a human-readable name from a stage ID.
// "village" -> "Village", "guardian" -> "Guardian".
func stageDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing
// the hero, current stage, vitals, and gold.
func (m Model) renderStatusBar() string {
	p := m.engine.Player
	if p == nil {
		bar := " " + m.engine.Defs.Game.Title
		return styleStatusBar.Width(m.width).Render(bar)
	}

	stageName := stageDisplayName(string(m.engine.Story.Stage()))
	left := fmt.Sprintf(" %s the %s | %s", p.Name, p.Class, stageName)
	if s := m.engine.Session(); s != nil {
		e := s.Enemy()
		left = fmt.Sprintf(" %s vs %s (%d HP)", p.Name, e.Name, e.HP)
	}

	right := fmt.Sprintf("HP %d/%d | MP %d/%d | Gold %d ",
		p.HP, p.MaxHP, p.MP, p.MaxMP, p.Gold)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
