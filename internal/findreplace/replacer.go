package findreplace

import (
	"fmt"
	"time"

	"graphide/internal/editor"
	"graphide/internal/event"
)

// Replacement status messages.
const (
	msgNothingReplaced = "No matches found. Nothing is replaced."
	msgOneReplaced     = "1 occurrence replaced."
	msgNoneReplaced    = "No occurrences replaced."
)

// replacedMessageTimeout is how long replacement confirmations stay on
// the status bar.
const replacedMessageTimeout = time.Second

// Replacer extends the search controller with replacement: single
// occurrence, replace-and-move and replace-all. Replacement of a
// single occurrence is allowed only while the cursor sits on the
// current match, tracked through a cursor movement subscription.
type Replacer struct {
	*Controller

	replaceText    string
	replaceHistory *SearchHistory

	// replaceable is false for read-only views such as annotation
	// viewers; they can be searched but not modified.
	replaceable    bool
	replaceEnabled bool

	cursorCancel func()
}

// NewReplacer creates a replacer over the document manager.
func NewReplacer(manager Manager, store HistoryStore, notifier Notifier, bus *event.Bus) *Replacer {
	r := &Replacer{
		Controller:     NewController(manager, store, notifier, bus),
		replaceHistory: NewSearchHistory(store.ReplaceHistory()),
	}
	r.OnResult(func(found bool) {
		r.replaceEnabled = found && r.replaceable
	})
	if bus != nil {
		r.subscribe(event.TopicProjectChanged, func(any) {
			r.replaceHistory.Set(store.ReplaceHistory())
			r.replaceText = ""
		})
		// The embedded controller already re-binds on focus; this
		// subscription renews the cursor subscription on top.
		r.subscribe(event.TopicDocumentFocused, func(any) {
			r.Bind()
		})
	}
	return r
}

// Bind points the replacer at the focused document and renews the
// cursor subscription that gates the replace operations.
func (r *Replacer) Bind() {
	r.Controller.Bind()

	if r.cursorCancel != nil {
		r.cursorCancel()
		r.cursorCancel = nil
	}

	if !r.isText || r.kind == KindAnnotation || r.ed.ReadOnly() {
		r.replaceable = false
		r.replaceEnabled = false
		return
	}

	r.replaceable = true
	r.cursorCancel = r.ed.OnCursorMoved(r.cursorMoved)
	r.cursorMoved()
}

// Begin opens a replace session. The cursor subscription renews
// before the initial search runs so the replace gate tracks the
// session from its first match.
func (r *Replacer) Begin(text string) {
	r.Bind()
	r.Controller.Begin(text)
}

// BeginHidden starts a replace session without raising the bar.
func (r *Replacer) BeginHidden(text string) {
	r.Begin(text)
}

// Close drops the cursor and event subscriptions.
func (r *Replacer) Close() {
	if r.cursorCancel != nil {
		r.cursorCancel()
		r.cursorCancel = nil
	}
	r.Controller.Close()
}

// cursorMoved recomputes the replace gate: replacing applies only
// while the cursor is on the current match.
func (r *Replacer) cursorMoved() {
	enabled := false
	if attrs, err := r.registry.Get(r.docID); err == nil {
		line, col := r.ed.CursorPosition()
		enabled = line == attrs.Match.Line && col == attrs.Match.Col
	}
	r.replaceEnabled = enabled && r.replaceable
}

// SetReplaceText changes the replacement text.
func (r *Replacer) SetReplaceText(text string) {
	if r.suppress {
		return
	}
	r.replaceText = text
}

// ReplaceText returns the current replacement text.
func (r *Replacer) ReplaceText() string { return r.replaceText }

// ReplaceEnabled reports whether a single replacement applies now.
func (r *Replacer) ReplaceEnabled() bool { return r.replaceEnabled }

// ReplaceAllEnabled reports whether replace-all applies now.
func (r *Replacer) ReplaceAllEnabled() bool {
	return r.replaceable && !r.query.IsEmpty()
}

// ReplaceHistoryItems returns the replacement history, most recent
// first.
func (r *Replacer) ReplaceHistoryItems() []string { return r.replaceHistory.Items() }

// Replace substitutes the current match. The cursor ends up right
// after the inserted text, so replacing "text" with "prefix_text"
// cannot loop on its own output.
func (r *Replacer) Replace() {
	if !r.replaceEnabled {
		return
	}
	attrs, err := r.registry.Get(r.docID)
	if err != nil {
		return
	}

	r.updateReplaceHistory()

	found := r.ed.FindFirstTarget(r.query.Text,
		r.query.Regex, r.query.CaseSensitive, r.query.WholeWord,
		attrs.Match.Line, attrs.Match.Col)
	if !found {
		// The remembered match no longer describes real text.
		r.notifier.Show(msgNothingReplaced)
		attrs.Match = editor.NoMatch
		r.replaceEnabled = false
		return
	}

	if r.ed.ReplaceTarget(r.replaceText) {
		r.notifier.ShowTimed(msgOneReplaced, replacedMessageTimeout)
		attrs.Match.Col += len(r.replaceText)
		r.ed.SetCursorPosition(attrs.Match.Line, attrs.Match.Col)
		r.replaceEnabled = false
	} else {
		r.notifier.Show(msgNoneReplaced)
	}
	// The old match no longer describes real text.
	attrs.Match = editor.NoMatch
}

// ReplaceAll substitutes every occurrence in the document as a single
// undo unit and reports the count on the status bar.
func (r *Replacer) ReplaceAll() {
	if !r.replaceable {
		return
	}

	r.updateReplaceHistory()

	found := r.ed.FindFirstTarget(r.query.Text,
		r.query.Regex, r.query.CaseSensitive, r.query.WholeWord, 0, 0)
	if !found {
		r.notifier.Show(msgNothingReplaced)
		return
	}

	count := 0
	r.ed.BeginUndoAction()
	for found {
		r.ed.ReplaceTarget(r.replaceText)
		count++
		found = r.ed.FindNextTarget()
	}
	r.ed.EndUndoAction()
	r.replaceEnabled = false

	if count == 1 {
		r.notifier.ShowTimed(msgOneReplaced, replacedMessageTimeout)
	} else {
		r.notifier.ShowTimed(fmt.Sprintf("%d occurrences replaced.", count), replacedMessageTimeout)
	}
}

// ReplaceAndMove substitutes the current match and moves to the next
// occurrence.
func (r *Replacer) ReplaceAndMove() {
	r.Replace()
	r.nextAndRecord(false)
}

// Next moves to the next occurrence. Right after a replacement the
// cursor may already be past the old match without sitting on a new
// one; a second step covers that case so Next always makes progress.
func (r *Replacer) Next() bool {
	return r.nextAndRecord(true)
}

func (r *Replacer) nextAndRecord(clearMessage bool) bool {
	found := false
	if r.isText {
		oldLine, oldCol := r.ed.CursorPosition()
		found = r.next(clearMessage)
		line, col := r.ed.CursorPosition()
		if line == oldLine && col == oldCol {
			found = r.next(clearMessage)
		}
	}
	r.updateReplaceHistory()
	return found
}

// Prev moves to the previous occurrence.
func (r *Replacer) Prev() bool {
	found := r.prev(true)
	r.updateReplaceHistory()
	return found
}

// SearchAgain repeats the search in the sticky direction.
func (r *Replacer) SearchAgain() bool {
	if r.backward {
		return r.Prev()
	}
	return r.Next()
}

func (r *Replacer) updateReplaceHistory() {
	changedFind := false
	if !r.query.IsEmpty() {
		changedFind = r.findHistory.Add(r.query.Text)
	}
	changedReplace := false
	if r.replaceText != "" {
		changedReplace = r.replaceHistory.Add(r.replaceText)
	}
	if changedFind || changedReplace {
		r.store.SetReplaceHistory(r.findHistory.Items(), r.replaceHistory.Items())
	}
}
