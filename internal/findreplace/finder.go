package findreplace

import "graphide/internal/event"

// Finder drives find-only search sessions: incremental highlighting
// plus next/prev navigation with wrap-around.
type Finder struct {
	*Controller
}

// NewFinder creates a finder over the document manager.
func NewFinder(manager Manager, store HistoryStore, notifier Notifier, bus *event.Bus) *Finder {
	return &Finder{Controller: NewController(manager, store, notifier, bus)}
}

// Next moves to the occurrence after the cursor, wrapping to the top
// when the end of the document is reached. The direction sticks so
// SearchAgain keeps going forward.
func (f *Finder) Next() bool {
	found := f.next(true)
	f.updateFindHistory()
	return found
}

// Prev moves to the occurrence before the cursor, wrapping to the
// bottom when the beginning of the document is reached.
func (f *Finder) Prev() bool {
	found := f.prev(true)
	f.updateFindHistory()
	return found
}

// SearchAgain repeats the search in the sticky direction. This is the
// Enter key in the search field.
func (f *Finder) SearchAgain() bool {
	if f.backward {
		return f.Prev()
	}
	return f.Next()
}

func (f *Finder) updateFindHistory() {
	if f.query.IsEmpty() {
		return
	}
	if f.findHistory.Add(f.query.Text) {
		f.store.SetFindHistory(f.findHistory.Items())
	}
}
