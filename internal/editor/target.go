package editor

import (
	"regexp"

	"graphide/internal/engine/buffer"
	"graphide/internal/engine/history"
)

// targetState tracks the cursorless find-and-replace scan used by
// FindFirstTarget / FindNextTarget / ReplaceTarget.
type targetState struct {
	re    *regexp.Regexp
	next  buffer.ByteOffset
	span  buffer.Range
	found bool
}

// FindFirstTarget starts a target scan at (line, col) and locates the
// first match. Negative coordinates start from the document top.
func (e *Editor) FindFirstTarget(text string, isRegex, caseSensitive, wholeWord bool, line, col int) bool {
	re, err := compileSearch(text, isRegex, caseSensitive, wholeWord)
	if err != nil {
		e.target = targetState{}
		return false
	}
	if line < 0 || col < 0 {
		line, col = 0, 0
	}
	e.target = targetState{
		re:   re,
		next: e.buf.PointToOffset(buffer.Point{Line: line, Col: col}),
	}
	return e.findTarget()
}

// FindNextTarget locates the next match after the previous target.
// After a replacement the scan resumes just past the inserted text,
// so a replacement that re-creates the query is not re-found.
func (e *Editor) FindNextTarget() bool {
	if e.target.re == nil {
		return false
	}
	return e.findTarget()
}

func (e *Editor) findTarget() bool {
	full := e.buf.Text()
	at := e.target.next
	for at <= len(full) {
		loc := e.target.re.FindStringIndex(full[at:])
		if loc == nil {
			e.target.found = false
			return false
		}
		if loc[1] > loc[0] {
			e.target.span = buffer.Range{Start: at + loc[0], End: at + loc[1]}
			e.target.found = true
			e.target.next = e.target.span.End
			return true
		}
		// Zero-length match; step forward one byte.
		at += loc[0] + 1
	}
	e.target.found = false
	return false
}

// ReplaceTarget substitutes the current target with the replacement
// text. The edit is recorded on the undo history, inside the open
// undo transaction if one is active. Returns false for read-only
// editors or when no target is current.
func (e *Editor) ReplaceTarget(replacement string) bool {
	if e.readOnly || !e.target.found {
		return false
	}
	span := e.target.span
	old := e.buf.TextRange(span.Start, span.End)
	cmd := history.NewReplaceCommand(span.Start, span.End, old, replacement)
	if err := e.hist.Execute(cmd, e.buf); err != nil {
		return false
	}
	e.target.found = false
	e.target.next = span.Start + len(replacement)
	e.cursor = e.buf.Clamp(e.cursor)
	return true
}
