// Package tui provides a Bubble Tea terminal UI for the FableCore
// adventure engine.
package tui

// History keeps recently entered commands for Up/Down recall.
type History struct {
	cmds []string
	max  int
	at   int // -1 = not recalling, otherwise index into cmds
}

// NewHistory creates a history buffer holding at most max commands.
func NewHistory(max int) *History {
	return &History{max: max, at: -1}
}

// Push records a command. Repeats of the most recent command are dropped,
// and the oldest entry is evicted once the buffer is full.
func (h *History) Push(cmd string) {
	if n := len(h.cmds); n > 0 && h.cmds[n-1] == cmd {
		return
	}
	h.cmds = append(h.cmds, cmd)
	if len(h.cmds) > h.max {
		copy(h.cmds, h.cmds[1:])
		h.cmds = h.cmds[:len(h.cmds)-1]
	}
}

// Prev steps back toward older commands. Returns false when empty.
func (h *History) Prev() (string, bool) {
	if len(h.cmds) == 0 {
		return "", false
	}
	switch {
	case h.at == -1:
		h.at = len(h.cmds) - 1
	case h.at > 0:
		h.at--
	}
	return h.cmds[h.at], true
}

// Next steps forward toward newer commands. Returns false once recall
// moves past the newest entry, restoring fresh input.
func (h *History) Next() (string, bool) {
	if h.at == -1 {
		return "", false
	}
	h.at++
	if h.at >= len(h.cmds) {
		h.at = -1
		return "", false
	}
	return h.cmds[h.at], true
}

// ResetCursor leaves recall mode.
func (h *History) ResetCursor() {
	h.at = -1
}
