package findreplace

import (
	"time"

	"github.com/google/uuid"

	"graphide/internal/editor"
)

// DocKind classifies the focused document for search purposes.
type DocKind int

const (
	// KindOther is any non-text view; search does not apply.
	KindOther DocKind = iota
	// KindPlainText is an editable text document.
	KindPlainText
	// KindAnnotation is a read-only annotated text view. It can be
	// searched but not modified.
	KindAnnotation
)

// Searchable reports whether the kind supports text search.
func (k DocKind) Searchable() bool {
	return k == KindPlainText || k == KindAnnotation
}

// TextEditor is the editing surface the search controllers drive.
// *editor.Editor implements it.
type TextEditor interface {
	CursorPosition() (line, col int)
	SetCursorPosition(line, col int)
	PositionFromLineCol(line, col int) int
	LineColFromPosition(pos int) (line, col int)

	FirstVisibleLine() int
	EnsureLineVisible(line int)
	SetSelection(fromLine, fromCol, toLine, toCol int)

	SetIndicatorRange(kind editor.Indicator, pos, length int)
	ClearIndicatorRange(kind editor.Indicator, pos, length int)
	ClearIndicators(kind editor.Indicator)

	Targets(text string, isRegex, caseSensitive, wholeWord bool, startLine, startCol, endLine, endCol int) []editor.Match
	HighlightMatch(text string, line, col int, isRegex, caseSensitive, wholeWord, doSelect, doScroll bool) editor.Match

	FindFirstTarget(text string, isRegex, caseSensitive, wholeWord bool, line, col int) bool
	FindNextTarget() bool
	ReplaceTarget(replacement string) bool
	BeginUndoAction()
	EndUndoAction()

	OnCursorMoved(fn func()) func()
	ReadOnly() bool
}

// Manager exposes the open documents to the search controllers.
type Manager interface {
	// CurrentDocument returns the focused document. ok is false when
	// nothing is open.
	CurrentDocument() (id uuid.UUID, kind DocKind, ed TextEditor, ok bool)

	// EditorByID returns the editor of an open document.
	EditorByID(id uuid.UUID) (TextEditor, bool)
}

// HistoryStore persists search and replacement histories across
// sessions, most recent first.
type HistoryStore interface {
	FindHistory() []string
	SetFindHistory(items []string)
	ReplaceHistory() []string
	SetReplaceHistory(find, replace []string)
}

// Notifier shows user-facing status messages.
type Notifier interface {
	// Show displays a message until replaced or cleared.
	Show(msg string)
	// ShowTimed displays a message that expires after d.
	ShowTimed(msg string, d time.Duration)
	// Clear removes the current message.
	Clear()
}
