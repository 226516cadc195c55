package buffer

import (
	"errors"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// EditResult describes a completed edit.
type EditResult struct {
	Range   Range  // the range that was replaced
	OldText string // the text previously in the range
	NewText string // the replacement text
	NewEnd  ByteOffset
}

// Buffer stores document text as lines without trailing newlines.
// Line separators are logical "\n" bytes; the document never ends
// with an implicit newline. Buffer is not safe for concurrent use:
// all access happens on the UI event loop.
type Buffer struct {
	lines []string
}

// New creates an empty buffer with a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromString creates a buffer holding the given text.
// CRLF and lone CR line endings are normalized to LF.
func FromString(s string) *Buffer {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return &Buffer{lines: strings.Split(s, "\n")}
}

// Text returns the whole document as a single string.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Len returns the document length in bytes.
func (b *Buffer) Len() ByteOffset {
	n := 0
	for _, l := range b.lines {
		n += len(l)
	}
	return n + len(b.lines) - 1
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i without its newline.
// Out-of-range lines yield an empty string.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineLen returns the byte length of line i without its newline.
func (b *Buffer) LineLen(i int) int {
	return len(b.Line(i))
}

// PointToOffset converts a (line, column) point to a byte offset.
// The point is clamped into the document.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	p = b.Clamp(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(b.lines[i]) + 1
	}
	return off + p.Col
}

// OffsetToPoint converts a byte offset to a (line, column) point.
// The offset is clamped into the document.
func (b *Buffer) OffsetToPoint(off ByteOffset) Point {
	if off < 0 {
		off = 0
	}
	for i, l := range b.lines {
		if off <= len(l) {
			return Point{Line: i, Col: off}
		}
		off -= len(l) + 1
	}
	last := len(b.lines) - 1
	return Point{Line: last, Col: len(b.lines[last])}
}

// Clamp returns the nearest valid point in the document.
func (b *Buffer) Clamp(p Point) Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := len(b.lines[p.Line]); p.Col > max {
		p.Col = max
	}
	return p
}

// TextRange returns the text in the half-open byte range [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) string {
	text := b.Text()
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}

// Replace substitutes the byte range [start, end) with text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (EditResult, error) {
	docLen := b.Len()
	if start < 0 || start > docLen || end > docLen {
		return EditResult{}, ErrOffsetOutOfRange
	}
	if end < start {
		return EditResult{}, ErrRangeInvalid
	}

	whole := b.Text()
	old := whole[start:end]
	updated := whole[:start] + text + whole[end:]
	b.lines = strings.Split(updated, "\n")

	return EditResult{
		Range:   Range{Start: start, End: end},
		OldText: old,
		NewText: text,
		NewEnd:  start + len(text),
	}, nil
}

// Insert adds text at the given offset.
func (b *Buffer) Insert(off ByteOffset, text string) (EditResult, error) {
	return b.Replace(off, off, text)
}

// Delete removes the byte range [start, end).
func (b *Buffer) Delete(start, end ByteOffset) (EditResult, error) {
	return b.Replace(start, end, "")
}
