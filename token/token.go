// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

// Package token defines the token kinds the Raku external scanner can be
// asked to recognize, along with the location and span types attached to
// recognized tokens.
package token

import (
	"fmt"
	"strconv"
)

// Type identifies one of the context-sensitive token kinds the scanner
// recognizes. Everything else in the language belongs to the host grammar.
type Type uint16

const (
	Invalid Type = iota
	QuoteConstructOpen
	QuoteConstructClose
	MultilineComment
	HeredocBody
)

var typeNames = []string{
	Invalid:             "invalid",
	QuoteConstructOpen:  "quote construct open",
	QuoteConstructClose: "quote construct close",
	MultilineComment:    "multiline comment",
	HeredocBody:         "heredoc body",
}

func (t Type) String() string {
	if int(t) >= len(typeNames) {
		return typeNames[Invalid]
	}
	return typeNames[t]
}

// TypeSet is the set of token kinds the host considers valid at the current
// position. The scanner only attempts kinds present in the set.
type TypeSet uint8

func NewTypeSet(types ...Type) TypeSet {
	var set TypeSet
	for _, t := range types {
		set = set.With(t)
	}
	return set
}

// AllTypes returns the set holding every recognizable kind.
func AllTypes() TypeSet {
	return NewTypeSet(QuoteConstructOpen, QuoteConstructClose, MultilineComment, HeredocBody)
}

func (s TypeSet) With(t Type) TypeSet {
	return s | TypeSet(1)<<t
}

func (s TypeSet) Has(t Type) bool {
	return s&(TypeSet(1)<<t) != 0
}

// Location is the position of a rune in the input. Lines and columns are
// 1-based and columns count runes; Offset is the 0-based byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

func (l Location) String() string {
	return strconv.Itoa(int(l.Line)) + ":" + strconv.Itoa(int(l.Column)) + ":" + strconv.FormatInt(l.Offset, 10)
}

// Span brackets a token in the input. End is exclusive: it locates the rune
// immediately after the token, so a zero-width token has Start == End.
type Span struct {
	Start Location
	End   Location
}

type Token struct {
	Span  Span
	Type  Type
	Value string
}

func (t Token) String() string {
	return fmt.Sprintf("[%v %v..%v %q]", t.Type, t.Span.Start, t.Span.End, t.Value)
}
