// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"strings"

	"github.com/RomanHargrave/tree-sitter-raku/input"
	"github.com/RomanHargrave/tree-sitter-raku/optional"
	"github.com/RomanHargrave/tree-sitter-raku/token"
)

// Declarator twigils that may sit between the comment introducer and the
// backtick. Attaching the declaration they document is the host's concern;
// here they only widen the token.
const declaratorTwigils = "|="

// scanMultilineComment recognizes an embedded comment: '#', an optional
// declarator twigil, a backtick, and an opening delimiter from the pair
// table, consuming through the close that balances the opener. Every
// paired opener inside the comment opens a nested scope on a scan-local
// stack, and each scope closes only on its own closer, so mismatched pairs
// nest rather than terminate. Running out of input first is a non-match;
// the unterminated comment is the host's error to report.
func (s *Scanner) scanMultilineComment(cur *input.Cursor) optional.Optional[token.Token] {
	if cur.Peek() != '#' {
		return optional.None[token.Token]()
	}
	start := cur.Location()
	var text strings.Builder

	text.WriteRune(cur.Next())
	if strings.ContainsRune(declaratorTwigils, cur.Peek()) {
		text.WriteRune(cur.Next())
	}
	if cur.Peek() != '`' {
		return optional.None[token.Token]()
	}
	text.WriteRune(cur.Next())

	if !PairedOpener(cur.Peek()) {
		return optional.None[token.Token]()
	}
	pending := []rune{ClosingDelimiter(cur.Peek())}
	text.WriteRune(cur.Next())

	for len(pending) > 0 {
		r := cur.Next()
		if r == input.EOF {
			return optional.None[token.Token]()
		}
		text.WriteRune(r)
		switch {
		case r == pending[len(pending)-1]:
			pending = pending[:len(pending)-1]
		case PairedOpener(r):
			pending = append(pending, ClosingDelimiter(r))
		}
	}

	return optional.Some(token.Token{
		Span:  token.Span{Start: start, End: cur.Location()},
		Type:  token.MultilineComment,
		Value: text.String(),
	})
}
