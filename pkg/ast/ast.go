// Package ast defines the expression tree of frdlisp and lowers parse trees
// into it.
package ast

import (
	"strconv"
	"strings"

	"src.frdlisp.dev/pkg/diag"
)

// Expr is an expression. The set of implementations is closed; use a type
// switch to tell them apart.
type Expr interface {
	diag.Ranger
	String() string
	isExpr()
}

// Call is a call form like (f a b). The empty list () is a Call with a nil
// Callee.
type Call struct {
	Callee Expr
	Args   []Expr
	diag.Ranging
}

// LiteralKind distinguishes the two kinds of Literal.
type LiteralKind int

const (
	// IntLiteral is an integer constant.
	IntLiteral LiteralKind = iota
	// Ident is a reference to a name, resolved when evaluated.
	Ident
)

// Literal is an integer or an identifier.
type Literal struct {
	Kind LiteralKind
	Int  int64
	Name string
	diag.Ranging
}

// DefineFunc is (define (name params...) body...).
type DefineFunc struct {
	Name   string
	Params []string
	Body   []Expr
	diag.Ranging
}

// DefineVar is (define name value).
type DefineVar struct {
	Name  string
	Value Expr
	diag.Ranging
}

// If is (if test then) or (if test then else). Else is nil when absent.
type If struct {
	Test Expr
	Then Expr
	Else Expr
	diag.Ranging
}

func (*Call) isExpr()       {}
func (*Literal) isExpr()    {}
func (*DefineFunc) isExpr() {}
func (*DefineVar) isExpr()  {}
func (*If) isExpr()         {}

// The String methods print expressions back in a normalized source form.

func (c *Call) String() string {
	if c.Callee == nil {
		return "()"
	}
	return list(c.Callee.String(), exprStrings(c.Args)...)
}

func (l *Literal) String() string {
	if l.Kind == IntLiteral {
		return strconv.FormatInt(l.Int, 10)
	}
	return l.Name
}

func (d *DefineFunc) String() string {
	head := list(d.Name, d.Params...)
	return list("define", append([]string{head}, exprStrings(d.Body)...)...)
}

func (d *DefineVar) String() string {
	return list("define", d.Name, d.Value.String())
}

func (i *If) String() string {
	if i.Else == nil {
		return list("if", i.Test.String(), i.Then.String())
	}
	return list("if", i.Test.String(), i.Then.String(), i.Else.String())
}

func list(head string, rest ...string) string {
	return "(" + strings.Join(append([]string{head}, rest...), " ") + ")"
}

func exprStrings(exprs []Expr) []string {
	ss := make([]string, len(exprs))
	for i, e := range exprs {
		ss[i] = e.String()
	}
	return ss
}
