// Package history keeps a linear undo/redo history of whole-buffer snapshots.
//
// Every entry pairs the rows of the buffer with the cursor position at the
// time it was recorded. An index points at the entry the buffer currently
// matches; Undo and Redo move it and hand the entry back to the caller, who
// installs it into the buffer. History never touches the buffer itself.
//
// Recording while the index is not at the tail discards every later entry:
// the redo branch is abandoned, there is no undo tree.
package history

import (
	"goditor/buffer"
	"slices"
)

// Entry is one recorded state.
type Entry struct {
	Lines  []string
	Cursor buffer.Position
}

type History struct {
	states  [][]string
	cursors []buffer.Position
	index   int
}

// New starts a history whose first entry is the given initial state.
func New(initial []string, cursor buffer.Position) *History {
	return &History{
		states:  [][]string{slices.Clone(initial)},
		cursors: []buffer.Position{cursor},
	}
}

// Record appends a state after the current index, dropping any entries that
// an earlier Undo left ahead of it.
func (h *History) Record(lines []string, cursor buffer.Position) {
	if h.IsInPast() {
		h.decapitate()
	}

	h.states = append(h.states, slices.Clone(lines))
	h.cursors = append(h.cursors, cursor)
	h.index++
}

// Undo steps back one entry. It returns false at the first entry.
func (h *History) Undo() (Entry, bool) {
	if h.index == 0 {
		return Entry{}, false
	}

	h.index--
	return h.current(), true
}

// Redo steps forward one entry. It returns false at the last entry.
func (h *History) Redo() (Entry, bool) {
	if !h.IsInPast() {
		return Entry{}, false
	}

	h.index++
	return h.current(), true
}

// IsInPast reports whether there are entries after the current one.
func (h *History) IsInPast() bool {
	return h.index < len(h.states)-1
}

func (h *History) CanUndo() bool {
	return h.index > 0
}

func (h *History) CanRedo() bool {
	return h.IsInPast()
}

// Index is the position of the current entry.
func (h *History) Index() int {
	return h.index
}

// Len is the number of entries, including the initial one.
func (h *History) Len() int {
	return len(h.states)
}

func (h *History) current() Entry {
	return Entry{
		Lines:  slices.Clone(h.states[h.index]),
		Cursor: h.cursors[h.index],
	}
}

// decapitate drops every entry after the current index.
func (h *History) decapitate() {
	clear(h.states[h.index+1:])
	h.states = h.states[:h.index+1]
	h.cursors = h.cursors[:h.index+1]
}
