package history

import (
	"errors"

	"graphide/internal/engine/buffer"
)

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History manages undo/redo state for a buffer.
// Not safe for concurrent use; all access happens on the UI event loop.
type History struct {
	undoStack []Command
	redoStack []Command

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// New creates a new history manager.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs a command and records it on the undo stack.
func (h *History) Execute(cmd Command, buf *buffer.Buffer) error {
	if err := cmd.Execute(buf); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push records an already-applied command.
// Clears the redo stack.
func (h *History) Push(cmd Command) {
	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.push(cmd)
}

func (h *History) push(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverses the most recent command.
func (h *History) Undo(buf *buffer.Buffer) error {
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	if err := cmd.Undo(buf); err != nil {
		h.undoStack = append(h.undoStack, cmd)
		return err
	}
	h.redoStack = append(h.redoStack, cmd)
	return nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(buf *buffer.Buffer) error {
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	if err := cmd.Execute(buf); err != nil {
		h.redoStack = append(h.redoStack, cmd)
		return err
	}
	h.undoStack = append(h.undoStack, cmd)
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int { return len(h.undoStack) }

// BeginGroup starts a command group.
// Commands pushed while grouping combine into a single undo unit.
// Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
// An empty group leaves the history untouched.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false

	switch len(h.groupCmds) {
	case 0:
	case 1:
		h.push(h.groupCmds[0])
	default:
		h.push(&CompoundCommand{Name: h.groupName, Commands: h.groupCmds})
	}
	h.groupCmds = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool { return h.grouping }

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}
