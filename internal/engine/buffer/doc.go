// Package buffer provides line-indexed text storage for editor documents.
//
// A Buffer holds document text as a slice of lines and converts between
// the two position representations the editor works with: byte offsets
// into the whole document and (line, column) points. Columns are byte
// offsets within a line; newline separators count as one byte each.
package buffer
