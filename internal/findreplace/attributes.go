package findreplace

import "graphide/internal/editor"

// Attributes is the per-document search state: the anchor where the
// search started, the scroll position to restore when the query stops
// matching, and the current match.
type Attributes struct {
	// Line and Col anchor the search start. Both are -1 when the
	// anchor has been cleared.
	Line int
	Col  int

	// FirstLine is the topmost visible line at anchor time, used to
	// restore the scroll position.
	FirstLine int

	// Match is the current match, or editor.NoMatch.
	Match editor.Match
}

// NewAttributes returns cleared attributes with no anchor and no match.
func NewAttributes() *Attributes {
	return &Attributes{Line: -1, Col: -1, FirstLine: -1, Match: editor.NoMatch}
}
