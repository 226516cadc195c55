package editor

import (
	"sort"

	"graphide/internal/engine/buffer"
	"graphide/internal/engine/history"
)

// Match is a search hit: the line and byte column of its start and
// its byte length. NoMatch is the "no current match" sentinel.
type Match struct {
	Line   int
	Col    int
	Length int
}

// NoMatch means no match was found or none is current.
var NoMatch = Match{Line: -1, Col: -1, Length: -1}

// Found returns true if m describes an actual match.
func (m Match) Found() bool {
	return m != NoMatch
}

// Indicator selects one of the two search highlight styles.
type Indicator int

const (
	// IndicatorSearch marks occurrences other than the current one.
	IndicatorSearch Indicator = iota
	// IndicatorMatch marks the current match.
	IndicatorMatch

	indicatorCount
)

// Option configures an Editor.
type Option func(*Editor)

// WithViewHeight sets the number of visible lines used for scrolling.
func WithViewHeight(lines int) Option {
	return func(e *Editor) {
		if lines > 0 {
			e.viewHeight = lines
		}
	}
}

// WithReadOnly makes the editor reject text mutation.
func WithReadOnly() Option {
	return func(e *Editor) { e.readOnly = true }
}

// Editor is a headless editable document view.
// Not safe for concurrent use; all access happens on the UI event loop.
type Editor struct {
	buf  *buffer.Buffer
	hist *history.History

	readOnly bool

	cursor buffer.Point
	sel    selection

	firstVisible int
	viewHeight   int

	// indicator ranges keyed by start offset
	indicators [indicatorCount]map[buffer.ByteOffset]int

	observers  map[int]func()
	nextObsID  int

	target targetState
}

type selection struct {
	active bool
	from   buffer.Point
	to     buffer.Point
}

// New creates an editor holding the given text.
func New(text string, opts ...Option) *Editor {
	e := &Editor{
		buf:        buffer.FromString(text),
		hist:       history.New(0),
		viewHeight: 24,
		observers:  make(map[int]func()),
	}
	for i := range e.indicators {
		e.indicators[i] = make(map[buffer.ByteOffset]int)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Text returns the whole document.
func (e *Editor) Text() string { return e.buf.Text() }

// Line returns the text of line i without its newline.
func (e *Editor) Line(i int) string { return e.buf.Line(i) }

// LineCount returns the number of lines.
func (e *Editor) LineCount() int { return e.buf.LineCount() }

// ReadOnly returns true if the editor rejects mutation.
func (e *Editor) ReadOnly() bool { return e.readOnly }

// CursorPosition returns the cursor as (line, column).
func (e *Editor) CursorPosition() (int, int) {
	return e.cursor.Line, e.cursor.Col
}

// SetCursorPosition moves the cursor, clamping into the document.
// Any selection is dropped.
func (e *Editor) SetCursorPosition(line, col int) {
	e.cursor = e.buf.Clamp(buffer.Point{Line: line, Col: col})
	e.sel.active = false
	e.notifyCursorMoved()
}

// PositionFromLineCol converts a (line, column) point to a byte offset.
func (e *Editor) PositionFromLineCol(line, col int) buffer.ByteOffset {
	return e.buf.PointToOffset(buffer.Point{Line: line, Col: col})
}

// LineColFromPosition converts a byte offset to a (line, column) pair.
func (e *Editor) LineColFromPosition(pos buffer.ByteOffset) (int, int) {
	p := e.buf.OffsetToPoint(pos)
	return p.Line, p.Col
}

// StringAt returns the text covering length bytes starting at pos.
// Multi-byte characters are returned whole because slicing happens on
// the raw bytes and the result is interpreted as UTF-8.
func (e *Editor) StringAt(pos buffer.ByteOffset, length int) string {
	return e.buf.TextRange(pos, pos+length)
}

// FirstVisibleLine returns the topmost visible line.
func (e *Editor) FirstVisibleLine() int { return e.firstVisible }

// EnsureLineVisible scrolls the minimal amount needed to bring the
// line into the view.
func (e *Editor) EnsureLineVisible(line int) {
	if line < 0 {
		line = 0
	}
	if max := e.buf.LineCount() - 1; line > max {
		line = max
	}
	if line < e.firstVisible {
		e.firstVisible = line
	} else if line >= e.firstVisible+e.viewHeight {
		e.firstVisible = line - e.viewHeight + 1
	}
}

// SetSelection selects from (fromLine, fromCol) to (toLine, toCol)
// and leaves the cursor at the "to" end. Selecting from a match end
// back to its start therefore lands the cursor on the match start.
func (e *Editor) SetSelection(fromLine, fromCol, toLine, toCol int) {
	e.sel = selection{
		active: true,
		from:   e.buf.Clamp(buffer.Point{Line: fromLine, Col: fromCol}),
		to:     e.buf.Clamp(buffer.Point{Line: toLine, Col: toCol}),
	}
	e.cursor = e.sel.to
	e.notifyCursorMoved()
}

// Selection returns the selection endpoints if one is active.
func (e *Editor) Selection() (from, to buffer.Point, ok bool) {
	return e.sel.from, e.sel.to, e.sel.active
}

// SetIndicatorRange paints an indicator over length bytes at pos.
func (e *Editor) SetIndicatorRange(kind Indicator, pos buffer.ByteOffset, length int) {
	if kind < 0 || kind >= indicatorCount || length <= 0 {
		return
	}
	e.indicators[kind][pos] = length
}

// ClearIndicatorRange removes the indicator painted at pos.
func (e *Editor) ClearIndicatorRange(kind Indicator, pos buffer.ByteOffset, length int) {
	if kind < 0 || kind >= indicatorCount {
		return
	}
	delete(e.indicators[kind], pos)
}

// ClearIndicators removes every range of the given indicator.
func (e *Editor) ClearIndicators(kind Indicator) {
	if kind < 0 || kind >= indicatorCount {
		return
	}
	e.indicators[kind] = make(map[buffer.ByteOffset]int)
}

// IndicatorRanges returns the painted ranges for an indicator in
// ascending offset order.
func (e *Editor) IndicatorRanges(kind Indicator) []buffer.Range {
	if kind < 0 || kind >= indicatorCount {
		return nil
	}
	ranges := make([]buffer.Range, 0, len(e.indicators[kind]))
	for pos, length := range e.indicators[kind] {
		ranges = append(ranges, buffer.Range{Start: pos, End: pos + length})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return ranges
}

// IndicatorAt reports whether an indicator covers the offset.
func (e *Editor) IndicatorAt(kind Indicator, off buffer.ByteOffset) bool {
	if kind < 0 || kind >= indicatorCount {
		return false
	}
	for pos, length := range e.indicators[kind] {
		if off >= pos && off < pos+length {
			return true
		}
	}
	return false
}

// OnCursorMoved registers an observer called after every cursor move.
// The returned function removes the registration.
func (e *Editor) OnCursorMoved(fn func()) func() {
	e.nextObsID++
	id := e.nextObsID
	e.observers[id] = fn
	return func() { delete(e.observers, id) }
}

func (e *Editor) notifyCursorMoved() {
	for _, fn := range e.observers {
		fn()
	}
}

// BeginUndoAction opens an undo transaction. Edits performed until
// EndUndoAction undo as a single unit.
func (e *Editor) BeginUndoAction() { e.hist.BeginGroup("replace") }

// EndUndoAction closes the current undo transaction.
func (e *Editor) EndUndoAction() { e.hist.EndGroup() }

// Undo reverses the last edit (or edit group).
func (e *Editor) Undo() error {
	if err := e.hist.Undo(e.buf); err != nil {
		return err
	}
	e.cursor = e.buf.Clamp(e.cursor)
	e.notifyCursorMoved()
	return nil
}

// Redo re-applies the last undone edit.
func (e *Editor) Redo() error {
	if err := e.hist.Redo(e.buf); err != nil {
		return err
	}
	e.cursor = e.buf.Clamp(e.cursor)
	e.notifyCursorMoved()
	return nil
}

// CanUndo returns true if an undo entry exists.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
