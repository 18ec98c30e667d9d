// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"golang.org/x/exp/slices"

	"github.com/RomanHargrave/tree-sitter-raku/optional"
)

// BraceFrame is one pending balanced-delimiter scope. Depth counts frames
// from the root, so the outermost pending frame is depth 1.
type BraceFrame struct {
	Depth   int
	Closing rune
}

// BraceStack tracks the closing delimiters of the quoting constructs that
// are currently open, innermost on top. The root frame is implicit: a stack
// with no frames is at root depth and expects no closer.
type BraceStack struct {
	frames []BraceFrame
}

// Push opens a scope for the given opening delimiter and returns the new
// top frame. The expected closer is resolved through the delimiter table,
// falling back to the opener itself.
func (s *BraceStack) Push(open rune) BraceFrame {
	frame := BraceFrame{Depth: len(s.frames) + 1, Closing: ClosingDelimiter(open)}
	s.frames = append(s.frames, frame)
	return frame
}

// Pop removes and returns the innermost frame. Popping at root depth is a
// contract violation: it means a close was matched with no open pending.
func (s *BraceStack) Pop() BraceFrame {
	if len(s.frames) == 0 {
		contractf("brace stack popped at root depth")
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return frame
}

// Peek returns the closing delimiter the innermost frame expects, absent at
// root depth.
func (s *BraceStack) Peek() optional.Optional[rune] {
	if len(s.frames) == 0 {
		return optional.None[rune]()
	}
	return optional.Some(s.frames[len(s.frames)-1].Closing)
}

// Depth is the number of frames above the root.
func (s *BraceStack) Depth() int {
	return len(s.frames)
}

// Reset drops every frame, returning the stack to root depth.
func (s *BraceStack) Reset() {
	s.frames = s.frames[:0]
}

// Frames returns a copy of the pending frames, outermost first.
func (s *BraceStack) Frames() []BraceFrame {
	return slices.Clone(s.frames)
}

// restore appends a frame with a known closer, bypassing the delimiter
// table. Used when rebuilding from serialized state.
func (s *BraceStack) restore(closing rune) {
	s.frames = append(s.frames, BraceFrame{Depth: len(s.frames) + 1, Closing: closing})
}
