// Package tui provides a Bubble Tea terminal UI for raidne: the current
// floor, a scrolling message log, a status bar and a command line.
package tui

// ring is a bounded list that drops its oldest entries once full.
type ring[T any] struct {
	items []T
	max   int
}

func (r *ring[T]) push(v T) {
	r.items = append(r.items, v)
	if over := len(r.items) - r.max; over > 0 {
		r.items = r.items[over:]
	}
}

func (r *ring[T]) last() (T, bool) {
	if len(r.items) == 0 {
		var zero T
		return zero, false
	}
	return r.items[len(r.items)-1], true
}

// History holds typed commands for recall with the arrow keys.
type History struct {
	ring[string]
	cursor int // -1 = not navigating, otherwise an index into items
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{ring: ring[string]{max: max}, cursor: -1}
}

// Push adds a command to history. Consecutive duplicates are skipped.
func (h *History) Push(cmd string) {
	if prev, ok := h.last(); ok && prev == cmd {
		return
	}
	h.push(cmd)
}

// Prev steps back to an older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.items) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.items) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.items[h.cursor], true
}

// Next steps forward. Past the newest entry it returns ("", false) and
// stops navigating.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.items) {
		h.cursor = -1
		return "", false
	}
	return h.items[h.cursor], true
}

// ResetCursor leaves navigation.
func (h *History) ResetCursor() {
	h.cursor = -1
}

// Log is the message log: the lines the dungeon posted, newest last.
type Log struct {
	ring[rawLine]
}

// NewLog keeps at most max lines.
func NewLog(max int) *Log {
	return &Log{ring: ring[rawLine]{max: max}}
}

// Add appends one turn's worth of lines. input, if set, is echoed first.
func (l *Log) Add(input string, lines []string, system bool) {
	if input != "" {
		l.push(rawLine{text: "> " + input, isInput: true})
	}
	for _, line := range lines {
		rl := rawLine{text: line, isSystem: system}
		if !system {
			rl.kind = classifyLine(line)
		}
		l.push(rl)
	}
}

// Lines returns the logged lines, oldest first.
func (l *Log) Lines() []rawLine {
	return l.items
}
