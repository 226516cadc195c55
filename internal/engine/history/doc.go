// Package history provides undo/redo for buffer edits.
//
// Edits are recorded as commands on an undo stack. Commands pushed
// between BeginGroup and EndGroup collapse into a single compound
// command, so a multi-step operation such as replace-all undoes as
// one unit.
package history
