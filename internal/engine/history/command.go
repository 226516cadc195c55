package history

import (
	"fmt"

	"graphide/internal/engine/buffer"
)

// Command is a reversible edit against a buffer.
type Command interface {
	// Execute performs the command.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// ReplaceCommand substitutes one byte range with new text.
type ReplaceCommand struct {
	Start buffer.ByteOffset
	End   buffer.ByteOffset
	Old   string
	New   string
}

// NewReplaceCommand creates a replace command for [start, end).
// old must be the text currently occupying the range.
func NewReplaceCommand(start, end buffer.ByteOffset, old, new string) *ReplaceCommand {
	return &ReplaceCommand{Start: start, End: end, Old: old, New: new}
}

// Execute applies the replacement.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer) error {
	if _, err := buf.Replace(c.Start, c.End, c.New); err != nil {
		return fmt.Errorf("replace at %d: %w", c.Start, err)
	}
	return nil
}

// Undo restores the original text.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer) error {
	if _, err := buf.Replace(c.Start, c.Start+len(c.New), c.Old); err != nil {
		return fmt.Errorf("undo replace at %d: %w", c.Start, err)
	}
	return nil
}

// Description returns a human-readable description of the command.
func (c *ReplaceCommand) Description() string {
	return fmt.Sprintf("replace %q with %q", c.Old, c.New)
}

// CompoundCommand groups several commands into one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// Execute runs the commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	for _, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverses the commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the group name.
func (c *CompoundCommand) Description() string {
	return c.Name
}
