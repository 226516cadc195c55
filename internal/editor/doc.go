// Package editor implements the text component the find/replace
// engine drives: a buffer with a cursor, selection, scrolling state,
// search indicator ranges, target-based replacement, and undo
// bracketing.
//
// The editor is deliberately headless. Painting indicator ranges
// records them; the terminal front end reads them back when drawing.
// All methods must be called from the UI event loop.
package editor
