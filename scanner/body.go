// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"strings"
	"unicode"

	"github.com/RomanHargrave/tree-sitter-raku/input"
	"github.com/RomanHargrave/tree-sitter-raku/optional"
	"github.com/RomanHargrave/tree-sitter-raku/token"
)

// identStart reports whether a rune can begin the identifier of a sigiled
// interpolation form.
func identStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// interpLead reports whether the cursor sits on an interpolation lead the
// frame's flags enable. Sigiled forms only count when an identifier
// follows; a bare sigil is literal text. A trailing backslash at end of
// input has nothing to substitute and is literal too.
func interpLead(flags InterpFlags, cur *input.Cursor) bool {
	switch cur.Peek() {
	case '{':
		return flags.Has(InterpClosure)
	case '$':
		return flags.Has(InterpScalar) && identStart(cur.PeekAt(1))
	case '@':
		return flags.Has(InterpArray) && identStart(cur.PeekAt(1))
	case '%':
		return flags.Has(InterpHash) && identStart(cur.PeekAt(1))
	case '&':
		return flags.Has(InterpFunction) && identStart(cur.PeekAt(1))
	case '\\':
		return flags.Has(InterpSubstitution) && cur.PeekAt(1) != input.EOF
	}
	return false
}

// terminatorAhead reports whether the line beginning at the cursor matches
// the sentinel once trimmed, tolerating a CRLF line ending. The cursor does
// not move.
func (s *Scanner) terminatorAhead(cur *input.Cursor, sentinel string) bool {
	mark := cur.Mark()
	var line strings.Builder
	for {
		r := cur.Peek()
		if r == input.EOF || r == '\n' {
			break
		}
		line.WriteRune(cur.Next())
	}
	cur.Rewind(mark)
	candidate := strings.TrimSuffix(line.String(), "\r")
	return s.Trim.apply(candidate) == sentinel
}

// scanHeredocBody delivers the next chunk of the oldest pending heredoc's
// body. A fresh body is only picked up at the start of a physical line; a
// body already interrupted by an interpolation span resumes anywhere. The
// token ends immediately before the terminator line, which is left for the
// host to consume, or at the first enabled interpolation lead, which leaves
// the frame pending and marked active so delivery resumes after the host
// parses the interpolation.
//
// Reaching the terminator pops the frame. A body may be empty, in which
// case the token is zero-width; the pop still happens. Running out of input
// with no terminator is a non-match that consumes nothing and pops nothing.
func (s *Scanner) scanHeredocBody(cur *input.Cursor) optional.Optional[token.Token] {
	head, ok := s.heredocs.Head().Get()
	if !ok {
		return optional.None[token.Token]()
	}
	if !cur.AtLineStart() && !head.Flags.Has(flagBodyActive) {
		return optional.None[token.Token]()
	}

	start := cur.Location()
	var body strings.Builder

	for {
		if cur.AtLineStart() && s.terminatorAhead(cur, head.Sentinel) {
			s.heredocs.Pop()
			return optional.Some(token.Token{
				Span:  token.Span{Start: start, End: cur.Location()},
				Type:  token.HeredocBody,
				Value: body.String(),
			})
		}
		for {
			r := cur.Peek()
			if r == input.EOF {
				return optional.None[token.Token]()
			}
			if r == '\n' {
				body.WriteRune(cur.Next())
				break
			}
			if interpLead(head.Flags, cur) {
				s.heredocs.markHeadActive(true)
				if body.Len() == 0 {
					// The interpolation starts the chunk; it parses first
					// and delivery resumes behind it.
					return optional.None[token.Token]()
				}
				return optional.Some(token.Token{
					Span:  token.Span{Start: start, End: cur.Location()},
					Type:  token.HeredocBody,
					Value: body.String(),
				})
			}
			body.WriteRune(cur.Next())
		}
	}
}
