package grammar

import (
	"errors"
	"strings"
	"testing"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/lex"
	"src.frdlisp.dev/pkg/tt"
)

// Splits code on spaces into tokens whose kind is the lexeme itself.
func words(code string) []lex.Token {
	var tokens []lex.Token
	pos := 0
	for _, w := range strings.Split(code, " ") {
		if w != "" {
			tokens = append(tokens, lex.Token{
				Kind: lex.Kind(w), Lexeme: w,
				Ranging: diag.Ranging{From: pos, To: pos + len(w)}})
		}
		pos += len(w) + 1
	}
	return tokens
}

func lexeme(t lex.Token) (string, error) { return t.Lexeme, nil }

func parseWords(t *Table[string], code string) (*Node[string], error) {
	return Parse(t, "[test]", code, words(code))
}

var rightRecursion = map[string][]Alternative{"S": {{"a", "S"}, {"a"}}}

// Parses code and returns the printed tree, or "" on error.
func parseString(table *Table[string], code string) (string, error) {
	if err := table.Validate(); err != nil {
		return "", err
	}
	n, err := parseWords(table, code)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("parseString", parseString).ArgsFmt("%p, %q"), tt.Table{
		// Right recursion flattened by a hook.
		tt.Args(&Table[string]{
			Start: "S", Rules: rightRecursion, Leaf: lexeme,
			Hooks: map[HookKey]Hook[string]{{"S", 0}: FlattenRight[string]},
		}, "a a a").Rets(`S["a" "a" "a"]`, nil),
		// Right recursion without a hook.
		tt.Args(&Table[string]{Start: "S", Rules: rightRecursion, Leaf: lexeme},
			"a a a").Rets(`S["a" S["a" S["a"]]]`, nil),
		// A later alternative is tried after an earlier one fails.
		tt.Args(&Table[string]{
			Start: "S",
			Rules: map[string][]Alternative{
				"S": {{"A", "b"}, {"a", "a", "b"}},
				"A": {{"a"}},
			},
			Leaf: lexeme,
		}, "a a b").Rets(`S["a" "a" "b"]`, nil),
		// The unwrap hook drops delimiters.
		tt.Args(&Table[string]{
			Start: "E",
			Rules: map[string][]Alternative{"E": {{"(", "E", ")"}, {"x"}}},
			Leaf:  lexeme,
			Hooks: map[HookKey]Hook[string]{{"E", 0}: Unwrap[string](1)},
		}, "( ( x ) )").Rets(`E[E[E["x"]]]`, nil),
		// Empty alternative.
		tt.Args(&Table[string]{
			Start: "S",
			Rules: map[string][]Alternative{
				"S":   {{"x", "Opt", "y"}},
				"Opt": {{"z"}, {}},
			},
			Leaf: lexeme,
		}, "x y").Rets(`S["x" Opt[] "y"]`, nil),
	})
}

func isSyntaxError(err error) bool {
	var parseErr *Error
	return errors.As(err, &parseErr)
}

func TestParse_ChoiceIsCommitted(t *testing.T) {
	parseFails := func(table *Table[string], code string) bool {
		_, err := parseWords(table, code)
		return isSyntaxError(err)
	}
	tt.Test(t, tt.Fn("parseFails", parseFails).ArgsFmt("%p, %q"), tt.Table{
		// The shorter alternative is declared first.
		tt.Args(&Table[string]{
			Start: "P",
			Rules: map[string][]Alternative{"P": {{"e"}, {"e", "P"}}},
			Leaf:  lexeme,
		}, "e e").Rets(true),
		// No retry inside a nonterminal that already matched.
		tt.Args(&Table[string]{
			Start: "S",
			Rules: map[string][]Alternative{
				"S": {{"A", "b"}},
				"A": {{"a"}, {"a", "a"}},
			},
			Leaf: lexeme,
		}, "a a b").Rets(true),
	})
}

func TestParse_Ranges(t *testing.T) {
	table := &Table[string]{
		Start: "S",
		Rules: map[string][]Alternative{
			"S":   {{"x", "Opt", "y"}},
			"Opt": {{"z"}, {}},
		},
		Leaf: lexeme,
	}
	n, err := parseWords(table, "x  y")
	if err != nil {
		t.Fatal(err)
	}
	if n.Range() != (diag.Ranging{From: 0, To: 4}) {
		t.Errorf("root range %v, want 0-4", n.Range())
	}
	// The empty Opt sits right before y.
	if r := n.Children[1].Range(); r != diag.PointRanging(3) {
		t.Errorf("empty node range %v, want 3-3", r)
	}
}

var listTable = &Table[string]{
	Start: "E",
	Rules: map[string][]Alternative{
		"E":    {{"(", ")"}, {"(", "List", ")"}, {"x"}},
		"List": {{"E", "List"}, {"E"}},
	},
	Leaf: lexeme,
}

// Returns the message, range and partialness of the syntax error from parsing
// code with listTable.
func parseListError(code string) (string, diag.Ranging, bool) {
	_, err := parseWords(listTable, code)
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		return "", diag.Ranging{}, false
	}
	return parseErr.Message, parseErr.Range(), parseErr.Partial
}

func TestParse_Errors(t *testing.T) {
	tt.Test(t, tt.Fn("parseListError", parseListError), tt.Table{
		tt.Args("( x").Rets(
			"unexpected end of input, should be '(', ')' or x", diag.PointRanging(3), true),
		tt.Args("( x ) )").Rets(
			`unexpected ")", should be end of input`, diag.Ranging{From: 6, To: 7}, false),
		tt.Args(") x").Rets(
			`unexpected ")", should be '(' or x`, diag.Ranging{From: 0, To: 1}, false),
		tt.Args("").Rets(
			"unexpected end of input, should be '(' or x", diag.PointRanging(0), true),
	})
}

// Lists nested in last position, like (f (f (f x))), make both alternatives
// of List start with the same E.
func TestParse_NestingIsLinear(t *testing.T) {
	const depth = 200
	code := strings.Repeat("( x ", depth) + "x" + strings.Repeat(" )", depth)
	tokens := words(code)
	p := newParser(listTable, "[test]", code, tokens)
	if _, end, ok := p.reduce(listTable.Start, 0); !ok || end != len(tokens) {
		t.Fatalf("reduce -> (%v, %v), want (%v, true)", end, ok, len(tokens))
	}
	alternatives := 0
	for _, alts := range listTable.Rules {
		alternatives += len(alts)
	}
	if limit := alternatives * (len(tokens) + 1); p.attempt > limit {
		t.Errorf("%d reduction attempts, want at most %d", p.attempt, limit)
	}
}

func TestParse_LeafError(t *testing.T) {
	errBadLeaf := errors.New("bad leaf")
	table := &Table[string]{
		Start: "S",
		Rules: map[string][]Alternative{"S": {{"a", "b"}, {"a", "c"}}},
		Leaf: func(t lex.Token) (string, error) {
			if t.Lexeme == "b" {
				return "", errBadLeaf
			}
			return t.Lexeme, nil
		},
	}
	_, err := parseWords(table, "a b")
	if err != errBadLeaf {
		t.Errorf("got error %v, want %v", err, errBadLeaf)
	}
}

func validateError(table *Table[string]) string {
	if err := table.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

func TestValidate(t *testing.T) {
	tt.Test(t, tt.Fn("validateError", validateError).ArgsFmt("%p"), tt.Table{
		tt.Args(&Table[string]{Start: "S", Leaf: lexeme}).
			Rets(`start symbol "S" has no rules`),
		tt.Args(&Table[string]{Start: "S", Rules: map[string][]Alternative{"S": {{"a"}}}}).
			Rets("no leaf constructor"),
		tt.Args(&Table[string]{
			Start: "S", Rules: map[string][]Alternative{"S": {{"a"}}},
			Leaf:  lexeme,
			Hooks: map[HookKey]Hook[string]{{"S", 1}: FlattenRight[string]},
		}).Rets(`hook for nonexistent alternative 1 of "S"`),
		// Direct left recursion.
		tt.Args(&Table[string]{
			Start: "E",
			Rules: map[string][]Alternative{"E": {{"E", "+", "n"}, {"n"}}},
			Leaf:  lexeme,
		}).Rets("left recursion: [E E]"),
		// Indirect left recursion.
		tt.Args(&Table[string]{
			Start: "A",
			Rules: map[string][]Alternative{
				"A": {{"B", "x"}},
				"B": {{"y"}, {"A", "y"}},
			},
			Leaf: lexeme,
		}).Rets("left recursion: [A B A]"),
	})
}
