// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

// Package scanner implements the stateful lexical core of the Raku grammar:
// the token shapes whose recognition depends on state carried forward
// between lex attempts. A quoting construct may open with nearly any
// punctuation rune, and its body runs until the paired closing delimiter;
// a heredoc body appears lines after the declaration that announces its
// terminator. The scanner keeps a delimiter stack and a pending-heredoc
// queue alive across attempts and snapshots both for the host's
// incremental reparsing.
//
// The host grammar drives a session through Scan, offering the subset of
// token kinds its current state admits. Everything the scanner does not
// recognize at a position is left for the host's other rules.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/RomanHargrave/tree-sitter-raku/input"
	"github.com/RomanHargrave/tree-sitter-raku/optional"
	"github.com/RomanHargrave/tree-sitter-raku/token"
)

// contractf reports an API misuse by the host or a corrupted state buffer.
// These are programming errors, not scan outcomes, so they halt with a
// stack-carrying panic.
func contractf(format string, args ...any) {
	panic(errors.WithStack(fmt.Errorf(format, args...)))
}

// TrimRule controls how a candidate terminator line is normalized before it
// is compared with a heredoc sentinel.
type TrimRule struct {
	Leading  bool
	Trailing bool
}

func (t TrimRule) apply(line string) string {
	if t.Leading {
		line = strings.TrimLeft(line, " \t")
	}
	if t.Trailing {
		line = strings.TrimRight(line, " \t")
	}
	return line
}

// Scanner is one parse session's lexical state: the delimiter stack for
// open quoting constructs and the queue of heredocs whose bodies are still
// owed. A session is single-threaded; Scan, Serialize, and Deserialize
// calls must not interleave.
type Scanner struct {
	braces   BraceStack
	heredocs HeredocQueue

	// Trim is applied to candidate terminator lines before they are
	// compared with the sentinel. Both sides are trimmed by default, which
	// permits indented terminators.
	Trim TrimRule

	// TraceFunc, when set, receives one line per recognized token and per
	// exhausted position.
	TraceFunc func(...any)
}

// New returns a session with both stacks at root depth.
func New() *Scanner {
	return &Scanner{Trim: TrimRule{Leading: true, Trailing: true}}
}

// Braces exposes the quoting-construct delimiter stack.
func (s *Scanner) Braces() *BraceStack {
	return &s.braces
}

// Heredocs exposes the pending-heredoc queue. The host's heredoc
// declaration rule pushes each declared sentinel here along with the
// interpolation capabilities its quoting form grants.
func (s *Scanner) Heredocs() *HeredocQueue {
	return &s.heredocs
}

// Reset returns both stacks to root depth, releasing every frame.
func (s *Scanner) Reset() {
	s.braces.Reset()
	s.heredocs.Reset()
}

func (s *Scanner) tracef(format string, args ...any) {
	if s.TraceFunc == nil {
		return
	}
	s.TraceFunc(fmt.Sprintf(format, args...))
}

// Scan attempts to recognize one of the requested token kinds at the cursor
// position. Absence is a normal outcome meaning no requested kind matches
// there; the host answers it by trying its internal rules. The cursor never
// moves on a non-match.
//
// Heredoc bodies are attempted first so that a pending body shadows the
// other kinds, then embedded comments, then the expected closing delimiter,
// then an opening delimiter.
func (s *Scanner) Scan(ctx context.Context, cur *input.Cursor, valid token.TypeSet) optional.Optional[token.Token] {
	attempts := [...]struct {
		typ  token.Type
		scan func(*input.Cursor) optional.Optional[token.Token]
	}{
		{token.HeredocBody, s.scanHeredocBody},
		{token.MultilineComment, s.scanMultilineComment},
		{token.QuoteConstructClose, s.scanQuoteClose},
		{token.QuoteConstructOpen, s.scanQuoteOpen},
	}
	for _, attempt := range attempts {
		if !valid.Has(attempt.typ) {
			continue
		}
		mark := cur.Mark()
		if tok, ok := attempt.scan(cur).Get(); ok {
			s.tracef("%v at %v in %v", attempt.typ, tok.Span.Start, cur.Name())
			return optional.Some(tok)
		}
		cur.Rewind(mark)
	}
	s.tracef("no match at %v in %v", cur.Location(), cur.Name())
	return optional.None[token.Token]()
}

// QuoteDelimiter reports whether a rune may open a quoting construct: any
// punctuation or symbol except the comment introducer and the escape.
func QuoteDelimiter(r rune) bool {
	if r == input.EOF || r == '#' || r == '\\' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// scanQuoteOpen recognizes a single rune usable as a quoting-construct
// opener and pushes the scope it opens.
func (s *Scanner) scanQuoteOpen(cur *input.Cursor) optional.Optional[token.Token] {
	r := cur.Peek()
	if !QuoteDelimiter(r) {
		return optional.None[token.Token]()
	}
	start := cur.Location()
	cur.Next()
	s.braces.Push(r)
	return optional.Some(token.Token{
		Span:  token.Span{Start: start, End: cur.Location()},
		Type:  token.QuoteConstructOpen,
		Value: string(r),
	})
}

// scanQuoteClose recognizes exactly the closer the innermost scope expects
// and pops the scope. At root depth, or on any other rune, the kind is not
// recognized: the content between open and close belongs to other rules.
func (s *Scanner) scanQuoteClose(cur *input.Cursor) optional.Optional[token.Token] {
	expected, ok := s.braces.Peek().Get()
	if !ok || cur.Peek() != expected {
		return optional.None[token.Token]()
	}
	start := cur.Location()
	cur.Next()
	s.braces.Pop()
	return optional.Some(token.Token{
		Span:  token.Span{Start: start, End: cur.Location()},
		Type:  token.QuoteConstructClose,
		Value: string(expected),
	})
}
