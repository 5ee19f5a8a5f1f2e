// Package grammar implements a backtracking parser engine driven by
// declarative grammar tables.
//
// The engine is a parsing expression grammar interpreter with unlimited
// lookahead: the alternatives of a nonterminal are tried in declared order,
// each from the same starting token, and the first one that matches wins.
// Once a nonterminal has matched, the choice is final; a failure later in the
// enclosing sequence makes the enclosing alternative fail instead. The
// outcome of reducing a nonterminal at a token index is memoized, so each
// pair is reduced at most once and parsing time is linear in the number of
// tokens for a fixed table.
//
// The engine knows nothing about any particular language. A Table supplies
// the productions, a constructor for leaf payloads and hooks that reshape
// nodes after reduction.
package grammar

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/lex"
	"src.frdlisp.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[grammar] ")

// Error is a syntax error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "syntax error" }

// EndOfInput is the name used for the end of the token sequence in error
// messages.
const EndOfInput = "end of input"

// Parse parses tokens as the start symbol of the table, which must cover all
// of them. The name and code are used for error messages; token ranges index
// into code. The returned error, if not nil, is a *Error, or the error
// returned by the table's Leaf function.
func Parse[L any](t *Table[L], name, code string, tokens []lex.Token) (*Node[L], error) {
	p := newParser(t, name, code, tokens)
	root, end, ok := p.reduce(t.Start, 0)
	if p.abort != nil {
		return nil, p.abort
	}
	if ok && end != len(tokens) {
		p.fail(end, EndOfInput)
		ok = false
	}
	if !ok {
		return nil, p.syntaxError()
	}
	return root, nil
}

type parser[L any] struct {
	t      *Table[L]
	name   string
	code   string
	tokens []lex.Token

	// The farthest token index where a terminal failed to match, and the
	// symbols expected there.
	failPos  int
	expected map[string]bool

	// Set when the Leaf function fails; parsing stops immediately.
	abort error
	// Identifies reduction attempts in the debug log.
	attempt int

	memo map[memoKey]memoEntry[L]
}

type memoKey struct {
	nt    string
	pivot int
}

type memoEntry[L any] struct {
	n   *Node[L]
	end int
	ok  bool
}

func newParser[L any](t *Table[L], name, code string, tokens []lex.Token) *parser[L] {
	return &parser[L]{t: t, name: name, code: code, tokens: tokens,
		expected: map[string]bool{}, memo: map[memoKey]memoEntry[L]{}}
}

// Reduces nt at pivot, reusing an earlier outcome for the same pair. Hooks
// never modify their input, so a memoized node may be shared by alternatives
// tried later.
func (p *parser[L]) reduce(nt string, pivot int) (*Node[L], int, bool) {
	key := memoKey{nt, pivot}
	if e, ok := p.memo[key]; ok {
		return e.n, e.end, e.ok
	}
	n, end, ok := p.reduceAlternatives(nt, pivot)
	if p.abort == nil {
		p.memo[key] = memoEntry[L]{n, end, ok}
	}
	return n, end, ok
}

// Tries the alternatives of nt from pivot in order. It returns the node built
// from the first alternative that matches and the index of the token after
// it.
func (p *parser[L]) reduceAlternatives(nt string, pivot int) (*Node[L], int, bool) {
	for i, alt := range p.t.Rules[nt] {
		p.attempt++
		id := p.attempt
		logger.Printf(">>> %d %s -> %v at %d", id, nt, alt, pivot)
		children, end, ok := p.matchSequence(alt, pivot)
		if p.abort != nil {
			return nil, 0, false
		}
		if !ok {
			logger.Printf("<<< %d %s -> %v failed", id, nt, alt)
			continue
		}
		logger.Printf("<<< %d %s -> %v matched up to %d", id, nt, alt, end)
		n := &Node[L]{Tag: nt, Children: children, Ranging: p.span(children, pivot)}
		if hook := p.t.Hooks[HookKey{nt, i}]; hook != nil {
			n = hook(n)
		}
		return n, end, true
	}
	return nil, 0, false
}

func (p *parser[L]) matchSequence(syms []string, pos int) ([]*Node[L], int, bool) {
	children := make([]*Node[L], 0, len(syms))
	for _, sym := range syms {
		if p.t.IsNonterminal(sym) {
			n, end, ok := p.reduce(sym, pos)
			if !ok {
				return nil, 0, false
			}
			children = append(children, n)
			pos = end
			continue
		}
		if pos >= len(p.tokens) || string(p.tokens[pos].Kind) != sym {
			p.fail(pos, sym)
			return nil, 0, false
		}
		token := p.tokens[pos]
		payload, err := p.t.Leaf(token)
		if err != nil {
			p.abort = err
			return nil, 0, false
		}
		children = append(children, &Node[L]{Token: token, Leaf: payload, Ranging: token.Ranging})
		pos++
	}
	return children, pos, true
}

func (p *parser[L]) fail(pos int, expected string) {
	if pos > p.failPos {
		p.failPos = pos
		p.expected = map[string]bool{}
	}
	if pos == p.failPos {
		p.expected[expected] = true
	}
}

// Returns the range covered by children, or an empty range at the token at
// pivot if there are no children.
func (p *parser[L]) span(children []*Node[L], pivot int) diag.Ranging {
	if len(children) > 0 {
		return diag.MixedRanging(children[0], children[len(children)-1])
	}
	return diag.PointRanging(p.offset(pivot))
}

func (p *parser[L]) offset(pos int) int {
	if pos < len(p.tokens) {
		return p.tokens[pos].From
	}
	return len(p.code)
}

func (p *parser[L]) syntaxError() *Error {
	var found string
	var r diag.Ranging
	if p.failPos < len(p.tokens) {
		token := p.tokens[p.failPos]
		found, r = fmt.Sprintf("%q", token.Lexeme), token.Ranging
	} else {
		found, r = EndOfInput, diag.PointRanging(len(p.code))
	}
	return &Error{
		Message: "unexpected " + found + shouldBe(p.expected),
		Context: *diag.NewContext(p.name, p.code, r),
		Partial: p.failPos == len(p.tokens),
	}
}

// Formats the expected symbols like ", should be '(', Id or Num".
func shouldBe(expected map[string]bool) string {
	if len(expected) == 0 {
		return ""
	}
	syms := make([]string, 0, len(expected))
	for sym := range expected {
		if sym == EndOfInput || isWord(sym) {
			syms = append(syms, sym)
		} else {
			syms = append(syms, "'"+sym+"'")
		}
	}
	sort.Strings(syms)
	var sb strings.Builder
	sb.WriteString(", should be ")
	for i, sym := range syms {
		if i > 0 {
			if i == len(syms)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(sym)
	}
	return sb.String()
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
