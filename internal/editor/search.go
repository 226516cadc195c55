package editor

import (
	"regexp"

	"graphide/internal/engine/buffer"
)

// compileSearch builds the regular expression for a query. Literal
// queries are quoted; whole-word wraps the pattern in word
// boundaries; case-insensitivity is a (?i) prefix.
func compileSearch(text string, isRegex, caseSensitive, wholeWord bool) (*regexp.Regexp, error) {
	pattern := text
	if !isRegex {
		pattern = regexp.QuoteMeta(text)
	}
	if wholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// Targets returns every match of the query within the scan range, in
// ascending document order. endLine = -1 means "to end of document".
// Zero-length regex matches are skipped. An invalid regex yields no
// matches.
func (e *Editor) Targets(text string, isRegex, caseSensitive, wholeWord bool, startLine, startCol, endLine, endCol int) []Match {
	re, err := compileSearch(text, isRegex, caseSensitive, wholeWord)
	if err != nil {
		return nil
	}

	full := e.buf.Text()
	start := e.buf.PointToOffset(buffer.Point{Line: startLine, Col: startCol})
	end := len(full)
	if endLine >= 0 {
		end = e.buf.PointToOffset(buffer.Point{Line: endLine, Col: endCol})
	}
	if start >= end {
		return nil
	}

	var matches []Match
	for _, loc := range re.FindAllStringIndex(full[start:end], -1) {
		if loc[1] == loc[0] {
			continue
		}
		p := e.buf.OffsetToPoint(start + loc[0])
		matches = append(matches, Match{Line: p.Line, Col: p.Col, Length: loc[1] - loc[0]})
	}
	return matches
}

// HighlightMatch repaints the search indicators for the query and
// returns the first match at or after (line, col), or NoMatch. All
// occurrences in the document get the "other matches" indicator; the
// returned match is not given the current-match style here — callers
// decide whether to promote it. When doSelect is set the match is
// selected end-to-start so the cursor lands on its first byte; when
// doScroll is set its line is brought into view.
func (e *Editor) HighlightMatch(text string, line, col int, isRegex, caseSensitive, wholeWord bool, doSelect, doScroll bool) Match {
	e.ClearIndicators(IndicatorSearch)
	e.ClearIndicators(IndicatorMatch)

	all := e.Targets(text, isRegex, caseSensitive, wholeWord, 0, 0, -1, -1)
	for _, m := range all {
		e.SetIndicatorRange(IndicatorSearch, e.PositionFromLineCol(m.Line, m.Col), m.Length)
	}

	from := e.buf.PointToOffset(buffer.Point{Line: line, Col: col})
	for _, m := range all {
		if e.PositionFromLineCol(m.Line, m.Col) < from {
			continue
		}
		if doSelect {
			pos := e.PositionFromLineCol(m.Line, m.Col)
			endLine, endCol := e.LineColFromPosition(pos + m.Length)
			e.SetSelection(endLine, endCol, m.Line, m.Col)
		}
		if doScroll {
			e.EnsureLineVisible(m.Line)
		}
		return m
	}
	return NoMatch
}
