package findreplace

import (
	"github.com/google/uuid"

	"graphide/internal/editor"
	"graphide/internal/event"
)

// Status bar messages.
const (
	msgNoMatches    = "No matches found"
	msgReachedEnd   = "Reached the end of the document. Searching from the beginning..."
	msgReachedBegin = "Reached the beginning of the document. Searching from the end..."
)

// Controller is the incremental search state machine shared by Finder
// and Replacer. It tracks the current query, the search direction and
// the per-document attributes, and reacts to document and project
// lifecycle events.
// Not safe for concurrent use; it runs on the UI event loop.
type Controller struct {
	manager  Manager
	store    HistoryStore
	notifier Notifier
	bus      *event.Bus

	registry *Registry
	locator  Locator

	findHistory *SearchHistory

	query    Query
	backward bool

	// suppress mutes the option setters while the controller itself
	// updates the query.
	suppress bool

	docID  uuid.UUID
	kind   DocKind
	ed     TextEditor
	isText bool

	resultObservers []func(found bool)

	subs []*event.Subscription
}

// NewController creates a controller bound to the document manager.
// It subscribes to document close events to drop stale search records
// and to project changes to reload the search history.
func NewController(manager Manager, store HistoryStore, notifier Notifier, bus *event.Bus) *Controller {
	c := &Controller{
		manager:     manager,
		store:       store,
		notifier:    notifier,
		bus:         bus,
		registry:    NewRegistry(),
		findHistory: NewSearchHistory(store.FindHistory()),
	}
	if bus != nil {
		c.subscribe(event.TopicDocumentClosed, func(evt any) {
			if closed, ok := evt.(event.DocumentClosed); ok {
				c.registry.Delete(closed.ID)
			}
		})
		c.subscribe(event.TopicProjectChanged, func(any) {
			c.projectChanged()
		})
		// Focus changes re-bind the controller so the navigation gate
		// and the searched document always agree.
		c.subscribe(event.TopicDocumentFocused, func(any) {
			c.Bind()
		})
	}
	return c
}

func (c *Controller) subscribe(topic event.Topic, fn event.Handler) {
	sub, err := c.bus.Subscribe(topic, fn)
	if err != nil {
		return
	}
	c.subs = append(c.subs, sub)
}

// Close drops the controller's event subscriptions.
func (c *Controller) Close() {
	for _, sub := range c.subs {
		_ = c.bus.Unsubscribe(sub)
	}
	c.subs = nil
}

func (c *Controller) projectChanged() {
	c.suppress = true
	c.findHistory.Set(c.store.FindHistory())
	c.query.Text = ""
	c.suppress = false
}

// Bind points the controller at the currently focused document. Call
// it whenever the focus changes; searching a non-text view is a no-op.
func (c *Controller) Bind() {
	id, kind, ed, ok := c.manager.CurrentDocument()
	if ok && kind.Searchable() {
		c.docID, c.kind, c.ed, c.isText = id, kind, ed, true
		return
	}
	c.docID, c.kind, c.ed, c.isText = uuid.Nil, KindOther, nil, false
}

// Begin opens a search session with the given text. The regex option
// and the backward direction reset; case and whole-word stick from the
// previous session. Any stale record for the focused document is
// dropped so the search anchors at the current cursor.
func (c *Controller) Begin(text string) {
	c.Bind()
	c.suppress = true
	c.query.Text = text
	c.query.Regex = false
	c.backward = false
	c.suppress = false
	c.performSearch(true)
}

// BeginHidden starts a search session without raising the search bar.
// The UI layer keeps the keyboard focus where it is.
func (c *Controller) BeginHidden(text string) {
	c.Begin(text)
}

// SetText changes the query text and re-runs the incremental search.
func (c *Controller) SetText(text string) {
	if c.suppress || text == c.query.Text {
		return
	}
	c.query.Text = text
	c.criteriaChanged()
}

// SetCaseSensitive toggles case sensitivity and re-runs the search.
func (c *Controller) SetCaseSensitive(on bool) {
	if c.suppress || on == c.query.CaseSensitive {
		return
	}
	c.query.CaseSensitive = on
	c.criteriaChanged()
}

// SetWholeWord toggles whole-word matching and re-runs the search.
func (c *Controller) SetWholeWord(on bool) {
	if c.suppress || on == c.query.WholeWord {
		return
	}
	c.query.WholeWord = on
	c.criteriaChanged()
}

// SetRegex toggles regular expression matching and re-runs the search.
func (c *Controller) SetRegex(on bool) {
	if c.suppress || on == c.query.Regex {
		return
	}
	c.query.Regex = on
	c.criteriaChanged()
}

func (c *Controller) criteriaChanged() {
	c.isolateTo(c.docID)
	c.performSearch(false)
}

// isolateTo clears the search highlights of every document except the
// given one. The registry records stay, so returning to a document
// resumes its search.
func (c *Controller) isolateTo(id uuid.UUID) {
	for _, key := range c.registry.IDs() {
		if key == id {
			continue
		}
		ed, ok := c.manager.EditorByID(key)
		if !ok {
			continue
		}
		ed.ClearIndicators(editor.IndicatorSearch)
		ed.ClearIndicators(editor.IndicatorMatch)
	}
}

// performSearch runs the incremental search against the focused
// document. fromScratch anchors a fresh session at the current cursor;
// otherwise the session's stored anchor is reused so typing more of
// the query does not creep forward.
func (c *Controller) performSearch(fromScratch bool) {
	if !c.isText {
		return
	}

	if fromScratch {
		c.registry.Delete(c.docID)
	}
	line, col := c.ed.CursorPosition()
	attrs := c.registry.Ensure(c.docID, line, col, c.ed.FirstVisibleLine())

	if !fromScratch {
		if c.query.IsEmpty() {
			// Query deleted; remove the highlight and scroll back.
			c.ed.ClearIndicators(editor.IndicatorSearch)
			c.ed.ClearIndicators(editor.IndicatorMatch)
			c.ed.SetCursorPosition(attrs.Line, attrs.Col)
			c.ed.EnsureLineVisible(attrs.FirstLine)
			attrs.Match = editor.NoMatch
			c.emitResult(false)
			return
		}

		m := c.locator.First(c.ed, c.query, attrs.Line, attrs.Col, false, false)
		attrs.Match = m
		if m.Found() {
			c.selectMatch(m)
			c.emitResult(true)
		} else {
			// Nothing matched; scroll back to the anchor.
			c.ed.SetCursorPosition(attrs.Line, attrs.Col)
			c.ed.EnsureLineVisible(attrs.FirstLine)
			c.emitResult(false)
		}
		return
	}

	if c.query.IsEmpty() {
		c.emitResult(false)
		return
	}

	m := c.locator.First(c.ed, c.query, attrs.Line, attrs.Col, false, false)
	attrs.Match = m
	if m.Found() {
		c.selectMatch(m)
		c.emitResult(true)
		return
	}
	c.emitResult(false)
}

// selectMatch selects the match end to start, which lands the cursor
// on its first byte, and scrolls it into view.
func (c *Controller) selectMatch(m editor.Match) {
	pos := c.ed.PositionFromLineCol(m.Line, m.Col)
	eLine, eCol := c.ed.LineColFromPosition(pos + m.Length)
	c.ed.SetSelection(eLine, eCol, m.Line, m.Col)
	c.ed.EnsureLineVisible(m.Line)
}

// canNavigate reports whether next/prev navigation applies right now.
func (c *Controller) canNavigate() bool {
	if c.query.IsEmpty() {
		return false
	}
	_, kind, _, ok := c.manager.CurrentDocument()
	return ok && kind.Searchable()
}

func (c *Controller) next(clearMessage bool) bool {
	if !c.canNavigate() {
		return false
	}
	c.backward = false
	return c.navigate(clearMessage)
}

func (c *Controller) prev(clearMessage bool) bool {
	if !c.canNavigate() {
		return false
	}
	c.backward = true
	return c.navigate(clearMessage)
}

func (c *Controller) navigate(clearMessage bool) bool {
	if !c.findNextPrev(clearMessage) {
		c.notifier.Show(msgNoMatches)
		c.emitResult(false)
		return false
	}
	c.emitResult(true)
	return true
}

// findNextPrev moves to the adjacent occurrence relative to the
// cursor. A cursor still sitting on the current match means the user
// has not moved it, so a forward step starts just past the match; a
// moved cursor re-anchors the search at its new position.
func (c *Controller) findNextPrev(clearMessage bool) bool {
	if !c.isText {
		return false
	}

	startLine, startCol := c.ed.CursorPosition()

	if attrs, err := c.registry.Get(c.docID); err == nil {
		if startLine == attrs.Match.Line && startCol == attrs.Match.Col {
			if !c.backward {
				// Columns are byte-measured, as is the match
				// length, so adding it starts the scan just
				// past the match. Anything shorter can land
				// inside it and re-find an overlap.
				startCol += attrs.Match.Length
			}
		} else {
			attrs.Line = startLine
			attrs.Col = startCol
			attrs.FirstLine = c.ed.FirstVisibleLine()
			attrs.Match = editor.NoMatch
		}
	} else {
		c.registry.Ensure(c.docID, startLine, startCol, c.ed.FirstVisibleLine())
	}

	if !c.searchFrom(startLine, startCol, clearMessage) {
		return false
	}

	// Found something; the cursor has moved onto it, so that becomes
	// the new anchor.
	if attrs, err := c.registry.Get(c.docID); err == nil {
		attrs.Line, attrs.Col = c.ed.CursorPosition()
		attrs.FirstLine = c.ed.FirstVisibleLine()
	}
	return true
}

// searchFrom locates the adjacent occurrence starting at the given
// position, wrapping around the document edge with a status message
// when the scan comes up empty.
func (c *Controller) searchFrom(startLine, startCol int, clearMessage bool) bool {
	c.locator.First(c.ed, c.query, startLine, startCol, false, false)

	var targets []editor.Match
	if !c.backward {
		targets = c.locator.FindAll(c.ed, c.query, startLine, startCol, -1, -1)
		if len(targets) == 0 {
			c.notifier.Show(msgReachedEnd)
			targets = c.locator.FindAll(c.ed, c.query, 0, 0, startLine, startCol)
		} else if clearMessage {
			c.notifier.Clear()
		}
	} else {
		targets = c.locator.FindAll(c.ed, c.query, 0, 0, startLine, startCol)
		if len(targets) == 0 {
			c.notifier.Show(msgReachedBegin)
			targets = c.locator.FindAll(c.ed, c.query, startLine, startCol, -1, -1)
		} else if clearMessage {
			c.notifier.Clear()
		}
	}

	if len(targets) == 0 {
		if attrs, err := c.registry.Get(c.docID); err == nil {
			attrs.Match = editor.NoMatch
		}
		return false
	}

	m := targets[0]
	if c.backward {
		m = targets[len(targets)-1]
	}
	c.advanceMatch(c.docID, m)
	return true
}

// advanceMatch promotes m to the current match of the document:
// demotes the previous match back to the occurrence style, paints m
// with the current-match style, selects it end to start and scrolls
// it into view.
func (c *Controller) advanceMatch(id uuid.UUID, m editor.Match) {
	attrs, err := c.registry.Get(id)
	if err != nil {
		return
	}
	ed, ok := c.manager.EditorByID(id)
	if !ok {
		return
	}

	if attrs.Match.Found() {
		pos := ed.PositionFromLineCol(attrs.Match.Line, attrs.Match.Col)
		ed.ClearIndicatorRange(editor.IndicatorMatch, pos, attrs.Match.Length)
		ed.SetIndicatorRange(editor.IndicatorSearch, pos, attrs.Match.Length)
	}

	attrs.Match = m

	pos := ed.PositionFromLineCol(m.Line, m.Col)
	ed.ClearIndicatorRange(editor.IndicatorSearch, pos, m.Length)
	ed.SetIndicatorRange(editor.IndicatorMatch, pos, m.Length)

	eLine, eCol := ed.LineColFromPosition(pos + m.Length)
	ed.SetSelection(eLine, eCol, m.Line, m.Col)
	ed.EnsureLineVisible(m.Line)
}

// Cancel dismisses the search session. The memorised anchors clear so
// the next session starts fresh, but matches and highlights of the
// focused document stay visible.
func (c *Controller) Cancel() {
	c.registry.ClearAnchors()
}

// OnResult registers an observer called with the outcome of every
// search step.
func (c *Controller) OnResult(fn func(found bool)) {
	c.resultObservers = append(c.resultObservers, fn)
}

func (c *Controller) emitResult(found bool) {
	for _, fn := range c.resultObservers {
		fn(found)
	}
}

// Query returns the current search query.
func (c *Controller) Query() Query { return c.query }

// LastSearchText returns the text searched most recently.
func (c *Controller) LastSearchText() string { return c.query.Text }

// Backward reports the sticky search direction.
func (c *Controller) Backward() bool { return c.backward }

// FindHistoryItems returns the find history, most recent first.
func (c *Controller) FindHistoryItems() []string { return c.findHistory.Items() }

// Registry exposes the per-document search records.
func (c *Controller) Registry() *Registry { return c.registry }
