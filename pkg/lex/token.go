package lex

import (
	"fmt"

	"src.frdlisp.dev/pkg/diag"
)

// Kind is the kind of a token. Kinds double as the terminal symbols of
// grammar tables, so they are spelled the way grammars refer to them.
type Kind string

// Token kinds of the reference dialect, in priority order.
const (
	OpenParen   Kind = "("
	CloseParen  Kind = ")"
	Identifier  Kind = "Id"
	Number      Kind = "Num"
	PrimitiveOp Kind = "PrimitiveOp"
)

// Token is a lexeme tagged with its kind and position in the source.
type Token struct {
	Kind   Kind
	Lexeme string
	diag.Ranging
}

func (t Token) String() string {
	if t.Lexeme == string(t.Kind) {
		return fmt.Sprintf("%q", t.Lexeme)
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
