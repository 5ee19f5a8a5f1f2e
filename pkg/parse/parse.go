// Package parse implements the frdlisp grammar on top of the generic grammar
// engine.
//
// The parse tree has four kinds of interior nodes:
//
//	Program    -> Expression Program | Expression
//	Expression -> "(" ")" | "(" List ")" | Atom
//	List       -> Expression List | Expression
//	Atom       -> Id | Num | PrimitiveOp
//
// The right-recursive Program and List alternatives are flattened, so a
// Program node holds all top-level Expression nodes and a List node holds all
// Expression nodes of a parenthesized form. A parenthesized List loses its
// delimiters, so such an Expression node has the List as its only child.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/grammar"
	"src.frdlisp.dev/pkg/lex"
)

// Nonterminals of the grammar.
const (
	Program    = "Program"
	Expression = "Expression"
	List       = "List"
	Atom       = "Atom"
)

// Node is a node of a parse tree.
type Node = grammar.Node[Leaf]

// LeafKind distinguishes the payloads of leaf nodes.
type LeafKind int

const (
	// Symbol is an identifier or a primitive operator.
	Symbol LeafKind = iota
	// Number is an integer literal.
	Number
	// Delimiter is a parenthesis.
	Delimiter
)

// Leaf is the payload of a leaf node.
type Leaf struct {
	Kind LeafKind
	// Name of a Symbol, or the text of a Delimiter.
	Name string
	// Value of a Number.
	Num int64
}

func (l Leaf) String() string {
	switch l.Kind {
	case Number:
		return strconv.FormatInt(l.Num, 10)
	default:
		return l.Name
	}
}

// Table is the grammar of frdlisp. Alternatives of a nonterminal are tried in
// order and the first match is final, so the longer Program and List
// alternatives come first.
var Table = &grammar.Table[Leaf]{
	Start: Program,
	Rules: map[string][]grammar.Alternative{
		Program: {
			{Expression, Program},
			{Expression},
		},
		Expression: {
			{string(lex.OpenParen), string(lex.CloseParen)},
			{string(lex.OpenParen), List, string(lex.CloseParen)},
			{Atom},
		},
		List: {
			{Expression, List},
			{Expression},
		},
		Atom: {
			{string(lex.Identifier)},
			{string(lex.Number)},
			{string(lex.PrimitiveOp)},
		},
	},
	Leaf: newLeaf,
	Hooks: map[grammar.HookKey]grammar.Hook[Leaf]{
		{Nonterminal: Program, Alt: 0}:    grammar.FlattenRight[Leaf],
		{Nonterminal: List, Alt: 0}:       grammar.FlattenRight[Leaf],
		{Nonterminal: Expression, Alt: 1}: grammar.Unwrap[Leaf](1),
	},
}

// NumberError is returned for number literals that do not fit in an int64.
type NumberError = diag.Error[NumberErrorTag]

// NumberErrorTag parameterizes [diag.Error] to define [NumberError].
type NumberErrorTag struct{}

func (NumberErrorTag) ErrorTag() string { return "number error" }

func newLeaf(t lex.Token) (Leaf, error) {
	switch t.Kind {
	case lex.OpenParen, lex.CloseParen:
		return Leaf{Kind: Delimiter, Name: t.Lexeme}, nil
	case lex.Identifier, lex.PrimitiveOp:
		return Leaf{Kind: Symbol, Name: t.Lexeme}, nil
	case lex.Number:
		// The separator groups digits.
		digits := strings.ReplaceAll(t.Lexeme, string(lex.NumberSeparator), "")
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return Leaf{}, &leafError{t, "number out of range: " + t.Lexeme}
		}
		return Leaf{Kind: Number, Num: n}, nil
	}
	return Leaf{}, &leafError{t, fmt.Sprintf("unexpected token kind %s", t.Kind)}
}

type leafError struct {
	token lex.Token
	msg   string
}

func (e *leafError) Error() string { return e.msg }

// Parse tokenizes and parses the source as a Program. An empty or blank
// source yields a Program node with no children.
//
// The returned error, if not nil, is a *lex.Error, a *grammar.Error or a
// *NumberError.
func Parse(src Source) (*Node, error) {
	tokens, err := lex.Tokenize(src.Name, src.Code)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Node{Tag: Program, Ranging: diag.PointRanging(0)}, nil
	}
	n, err := grammar.Parse(Table, src.Name, src.Code, tokens)
	var le *leafError
	if errors.As(err, &le) {
		return nil, &NumberError{
			Message: le.msg,
			Context: *diag.NewContext(src.Name, src.Code, le.token),
		}
	}
	return n, err
}

// IsPartial reports whether err is an error that may go away if more text is
// appended to the source, like an unclosed parenthesis.
func IsPartial(err error) bool {
	var syntaxErr *grammar.Error
	return errors.As(err, &syntaxErr) && syntaxErr.Partial
}
