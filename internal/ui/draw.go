package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"graphide/internal/editor"
)

var (
	styleText      = tcell.StyleDefault
	styleSearch    = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleMatch     = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleBar       = tcell.StyleDefault.Reverse(true)
)

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	textRows := h - 1
	if a.mode != modeEdit {
		textRows--
	}

	doc, err := a.docs.Current()
	if err == nil && textRows > 0 {
		a.drawDocument(doc.Editor, w, textRows)
	}
	if a.mode != modeEdit {
		a.drawBar(w, h-2)
	}
	a.drawStatus(w, h-1)
	a.screen.Show()
}

// drawDocument paints the visible window of the document. Each cell
// takes the style of the strongest marker covering its byte offset:
// the current match, then other occurrences, then the selection.
func (a *App) drawDocument(ed *editor.Editor, w, rows int) {
	first := ed.FirstVisibleLine()
	selStart, selEnd, hasSel := selectionSpan(ed)

	for row := 0; row < rows; row++ {
		line := first + row
		if line >= ed.LineCount() {
			break
		}
		base := ed.PositionFromLineCol(line, 0)
		x, off := 0, 0
		for _, r := range ed.Line(line) {
			if x >= w {
				break
			}
			pos := base + off
			style := styleText
			switch {
			case ed.IndicatorAt(editor.IndicatorMatch, pos):
				style = styleMatch
			case ed.IndicatorAt(editor.IndicatorSearch, pos):
				style = styleSearch
			case hasSel && pos >= selStart && pos < selEnd:
				style = styleSelection
			}
			a.screen.SetContent(x, row, r, nil, style)
			off += utf8.RuneLen(r)
			x++
		}
	}

	if a.mode == modeEdit {
		cLine, cCol := ed.CursorPosition()
		if cLine >= first && cLine < first+rows {
			a.screen.ShowCursor(screenColumn(ed.Line(cLine), cCol), cLine-first)
		} else {
			a.screen.HideCursor()
		}
	}
}

// selectionSpan returns the selection as an offset range. The
// controllers select end to start, so the endpoints may arrive
// reversed.
func selectionSpan(ed *editor.Editor) (start, end int, ok bool) {
	from, to, active := ed.Selection()
	if !active {
		return 0, 0, false
	}
	start = ed.PositionFromLineCol(from.Line, from.Col)
	end = ed.PositionFromLineCol(to.Line, to.Col)
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// screenColumn converts a byte column within a line to a rune column.
func screenColumn(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}

func (a *App) drawBar(w, y int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleBar)
	}

	label := "Find: " + a.findInput
	x := a.drawText(0, y, styleBar, label)
	cursorX := x
	if a.mode == modeReplace {
		x = a.drawText(x, y, styleBar, "  Replace: "+a.replaceInput)
		if a.replaceFocus {
			cursorX = x
		}
	}
	a.drawText(x, y, styleBar, "  "+a.optionFlags())
	a.screen.ShowCursor(cursorX, y)
}

// optionFlags renders the active search options, e.g. "[Aa][W][.*]".
func (a *App) optionFlags() string {
	q := a.activeController().Query()
	flags := ""
	if q.CaseSensitive {
		flags += "[Aa]"
	}
	if q.WholeWord {
		flags += "[W]"
	}
	if q.Regex {
		flags += "[.*]"
	}
	return flags
}

func (a *App) drawStatus(w, y int) {
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleText)
	}
	a.drawText(0, y, styleText, a.status)
}

// drawText writes a string left to right and returns the column after
// its last rune.
func (a *App) drawText(x, y int, style tcell.Style, text string) int {
	w, _ := a.screen.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
