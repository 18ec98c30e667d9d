// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

// Package input provides the buffered rune cursor the host engine hands to
// the scanner on every lex attempt.
package input

import (
	"unicode/utf8"

	"github.com/RomanHargrave/tree-sitter-raku/token"
)

// EOF is returned by Peek, PeekAt, and Next once the cursor has passed the
// last rune.
const EOF rune = -1

// Cursor is a read position over fully buffered source text. It tracks the
// line, column, and byte offset of the next unread rune and can be marked
// and rewound, which is how failed scan attempts leave the input untouched.
// Cursors do no I/O; the host buffers the input up front.
type Cursor struct {
	name string
	src  string
	off  int
	line int32
	col  int32
}

// NewCursor returns a cursor at the start of src. The name identifies the
// input in locations and traces, usually a file path.
func NewCursor(name string, src string) *Cursor {
	return &Cursor{name: name, src: src, line: 1, col: 1}
}

func (c *Cursor) Name() string {
	return c.name
}

// More reports whether at least one rune remains unread.
func (c *Cursor) More() bool {
	return c.off < len(c.src)
}

// Peek returns the next unread rune without consuming it.
func (c *Cursor) Peek() rune {
	return c.PeekAt(0)
}

// PeekAt returns the rune n runes past the read position without consuming
// anything, where PeekAt(0) is the rune Next would return.
func (c *Cursor) PeekAt(n int) rune {
	off := c.off
	for {
		if off >= len(c.src) {
			return EOF
		}
		r, size := utf8.DecodeRuneInString(c.src[off:])
		if n == 0 {
			return r
		}
		off += size
		n--
	}
}

// Next consumes and returns the next rune. Only a newline advances the line
// counter; carriage returns are ordinary runes.
func (c *Cursor) Next() rune {
	if c.off >= len(c.src) {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

// AtLineStart reports whether the next rune begins a physical line.
func (c *Cursor) AtLineStart() bool {
	return c.col == 1
}

// Location returns the position of the next unread rune.
func (c *Cursor) Location() token.Location {
	return token.Location{Line: c.line, Column: c.col, Offset: int64(c.off)}
}

// Mark is a cursor position captured for a later Rewind.
type Mark struct {
	off  int
	line int32
	col  int32
}

func (c *Cursor) Mark() Mark {
	return Mark{off: c.off, line: c.line, col: c.col}
}

// Rewind restores a position previously captured from the same cursor.
func (c *Cursor) Rewind(m Mark) {
	c.off, c.line, c.col = m.off, m.line, m.col
}
