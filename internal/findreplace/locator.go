package findreplace

import "graphide/internal/editor"

// Query is a search request: the text plus its matching options.
type Query struct {
	Text          string
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

// IsEmpty reports whether there is anything to search for.
func (q Query) IsEmpty() bool { return q.Text == "" }

// Locator finds query matches in an editor. It holds no state; every
// call scans the document as it is now.
type Locator struct{}

// FindAll returns the matches inside the scan range in ascending
// document order. endLine = -1 scans to the end of the document.
func (Locator) FindAll(ed TextEditor, q Query, startLine, startCol, endLine, endCol int) []editor.Match {
	return ed.Targets(q.Text, q.Regex, q.CaseSensitive, q.WholeWord,
		startLine, startCol, endLine, endCol)
}

// First returns the first match at or after (line, col) after
// repainting the occurrence highlight, or editor.NoMatch.
func (Locator) First(ed TextEditor, q Query, line, col int, doSelect, doScroll bool) editor.Match {
	return ed.HighlightMatch(q.Text, line, col,
		q.Regex, q.CaseSensitive, q.WholeWord, doSelect, doScroll)
}
