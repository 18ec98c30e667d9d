// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

// Command raku-scan drives the external scanner over a Raku source file and
// prints the tokens it recognizes. It stands in for the generated parser
// during grammar work: a miniature host that declares heredocs, consumes
// terminator lines, and offers the scanner the kinds a real grammar would
// consider valid at each position.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/RomanHargrave/tree-sitter-raku/input"
	"github.com/RomanHargrave/tree-sitter-raku/scanner"
	"github.com/RomanHargrave/tree-sitter-raku/token"
)

type opts struct {
	JSON  bool
	Trace bool
	State bool
	Kinds []string
}

var kindsByName = map[string]token.Type{
	"quote-open":        token.QuoteConstructOpen,
	"quote-close":       token.QuoteConstructClose,
	"multiline-comment": token.MultilineComment,
	"heredoc-body":      token.HeredocBody,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("raku-scan", pflag.PanicOnError)
	flags.BoolVar(&op.JSON, "json", false, "Output tokens as JSON, one object per line.")
	flags.BoolVar(&op.Trace, "trace", false, "Output every scan outcome to stderr as it happens.")
	flags.BoolVar(&op.State, "state", false, "Output the serialized session state after the run.")
	flags.StringSliceVar(&op.Kinds, "kind", nil, "Token kinds to recognize (default all).")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	valid := token.AllTypes()
	if len(op.Kinds) > 0 {
		v, err := parseKinds(op.Kinds)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		valid = v
	}

	name, src, err := readSource(targets)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	sess := scanner.New()
	if op.Trace {
		sess.TraceFunc = func(args ...any) {
			fmt.Fprintln(os.Stderr, args...)
		}
	}

	toks := drive(ctx, sess, input.NewCursor(name, src), valid)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	enc := json.NewEncoder(out)
	for _, tok := range toks {
		if op.JSON {
			if err := enc.Encode(newJSONToken(tok)); err != nil {
				panic(err)
			}
			continue
		}
		fmt.Fprintf(out, "%v..%v\t%v\t%q\n", tok.Span.Start, tok.Span.End, tok.Type, tok.Value)
	}
	if op.State {
		fmt.Fprintf(out, "state\t%s\n", hex.EncodeToString(sess.Serialize()))
	}
}

type jsonToken struct {
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
	Value string `json:"value"`
}

func newJSONToken(tok token.Token) jsonToken {
	return jsonToken{
		Type:  tok.Type.String(),
		Start: tok.Span.Start.String(),
		End:   tok.Span.End.String(),
		Value: tok.Value,
	}
}

// readSource loads the one named file, or stdin when no target is given.
func readSource(targets []string) (string, string, error) {
	switch len(targets) {
	case 0:
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		return "-", string(raw), nil
	case 1:
		raw, err := os.ReadFile(targets[0])
		if err != nil {
			return "", "", errors.WithStack(err)
		}
		return targets[0], string(raw), nil
	}
	return "", "", errors.Errorf("expected at most one file, got %d", len(targets))
}

func parseKinds(names []string) (token.TypeSet, error) {
	var set token.TypeSet
	for _, name := range names {
		typ, ok := kindsByName[name]
		if !ok {
			known := maps.Keys(kindsByName)
			slices.Sort(known)
			return 0, errors.Errorf("unknown token kind %q (known kinds: %s)", name, strings.Join(known, ", "))
		}
		set = set.With(typ)
	}
	return set, nil
}

// driver owns the grammar-side duties the scanner expects of its caller:
// recognizing heredoc declarations, consuming terminator lines behind
// finished bodies, and stepping over content that belongs to other rules.
type driver struct {
	sess  *scanner.Scanner
	cur   *input.Cursor
	valid token.TypeSet
	prev  rune
	toks  []token.Token
}

func drive(ctx context.Context, sess *scanner.Scanner, cur *input.Cursor, valid token.TypeSet) []token.Token {
	d := &driver{sess: sess, cur: cur, valid: valid}
	for d.cur.More() {
		if d.step(ctx) {
			continue
		}
		d.prev = d.cur.Next()
	}
	return d.toks
}

// step tries whatever can happen at the current position and reports
// whether anything consumed input.
func (d *driver) step(ctx context.Context) bool {
	if d.sess.Braces().Depth() > 0 {
		// Inside a quoting construct only its closer matters; the content
		// between the delimiters is the construct's own.
		return d.scan(ctx, d.valid&token.NewTypeSet(token.QuoteConstructClose))
	}
	if d.scan(ctx, d.valid&token.NewTypeSet(token.HeredocBody, token.MultilineComment)) {
		return true
	}
	if d.declareHeredoc() {
		return true
	}
	if d.valid.Has(token.QuoteConstructOpen) && d.quoteKeywordAhead() {
		return d.scan(ctx, token.NewTypeSet(token.QuoteConstructOpen))
	}
	return false
}

func (d *driver) scan(ctx context.Context, valid token.TypeSet) bool {
	before := d.sess.Heredocs().Depth()
	tok, ok := d.sess.Scan(ctx, d.cur, valid).Get()
	if !ok {
		return false
	}
	d.toks = append(d.toks, tok)
	d.prev = 0
	if tok.Type == token.HeredocBody && d.sess.Heredocs().Depth() < before {
		d.skipTerminatorLine()
	}
	return true
}

// skipTerminatorLine consumes the line a finished body stopped in front of,
// standing in for the host's terminator rule.
func (d *driver) skipTerminatorLine() {
	for d.cur.More() {
		if d.cur.Next() == '\n' {
			return
		}
	}
}

// declareHeredoc recognizes the declaration forms a real grammar owns and
// enqueues the announced body: q:to/…/ and qq:to/…/ with any delimiter,
// plus the shell-style <<WORD, <<'WORD', and <<"WORD". The q:to and single
// quoted forms declare verbatim bodies; the rest interpolate fully.
func (d *driver) declareHeredoc() bool {
	if wordRune(d.prev) {
		return false
	}
	mark := d.cur.Mark()
	sentinel, flags, ok := d.readHeredocDecl()
	if !ok {
		d.cur.Rewind(mark)
		return false
	}
	d.sess.Heredocs().Push(sentinel, flags)
	d.prev = 0
	return true
}

func (d *driver) readHeredocDecl() (string, scanner.InterpFlags, bool) {
	switch d.cur.Peek() {
	case 'q':
		d.cur.Next()
		flags := scanner.InterpFlags(0)
		if d.cur.Peek() == 'q' {
			d.cur.Next()
			flags = scanner.InterpAll
		}
		for _, want := range ":to" {
			if d.cur.Peek() != want {
				return "", 0, false
			}
			d.cur.Next()
		}
		open := d.cur.Peek()
		if !scanner.QuoteDelimiter(open) {
			return "", 0, false
		}
		d.cur.Next()
		sentinel, ok := d.readUntil(scanner.ClosingDelimiter(open))
		return sentinel, flags, ok
	case '<':
		d.cur.Next()
		if d.cur.Peek() != '<' {
			return "", 0, false
		}
		d.cur.Next()
		switch d.cur.Peek() {
		case '\'':
			d.cur.Next()
			sentinel, ok := d.readUntil('\'')
			return sentinel, 0, ok
		case '"':
			d.cur.Next()
			sentinel, ok := d.readUntil('"')
			return sentinel, scanner.InterpAll, ok
		default:
			var word strings.Builder
			for wordRune(d.cur.Peek()) {
				word.WriteRune(d.cur.Next())
			}
			return word.String(), scanner.InterpAll, word.Len() > 0
		}
	}
	return "", 0, false
}

// readUntil consumes through the closing delimiter and returns what came
// before it. Sentinels do not span lines.
func (d *driver) readUntil(closing rune) (string, bool) {
	var text strings.Builder
	for {
		r := d.cur.Peek()
		if r == input.EOF || r == '\n' {
			return "", false
		}
		d.cur.Next()
		if r == closing {
			return text.String(), text.Len() > 0
		}
		text.WriteRune(r)
	}
}

// quoteKeywordAhead consumes a q, qq, or Q quoting keyword when one sits at
// the cursor with a plain delimiter attached. Adverbed forms beyond :to are
// not modeled here.
func (d *driver) quoteKeywordAhead() bool {
	if wordRune(d.prev) {
		return false
	}
	mark := d.cur.Mark()
	switch d.cur.Peek() {
	case 'Q':
		d.cur.Next()
	case 'q':
		d.cur.Next()
		if d.cur.Peek() == 'q' {
			d.cur.Next()
		}
	default:
		return false
	}
	r := d.cur.Peek()
	if r == ':' || wordRune(r) || !scanner.QuoteDelimiter(r) {
		d.cur.Rewind(mark)
		return false
	}
	return true
}

func wordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
