package ast

import (
	"fmt"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/parse"
)

// Error is a malformed special form.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "malformed form" }

// Reserved words that introduce special forms.
const (
	Define = "define"
	IfWord = "if"
)

type lowerSpecial func(lw *lowerer, form *parse.Node, elems []*parse.Node) Expr

var specialForms map[string]lowerSpecial

// IsSpecial reports whether name introduces a special form when it appears at
// the head of a list.
func IsSpecial(name string) bool {
	_, ok := specialForms[name]
	return ok
}

func init() {
	// Assigned in init to break the initialization cycle through expr.
	specialForms = map[string]lowerSpecial{
		Define: lowerDefine,
		IfWord: lowerIf,
	}
}

type lowerer struct {
	src    parse.Source
	errors []*Error
}

// Lower lowers a Program node into the expressions it contains. Lowering
// continues past malformed forms so that all of them are reported; the
// returned error, if not nil, packs one or more *Error values (see
// [diag.UnpackErrors]).
func Lower(src parse.Source, n *parse.Node) ([]Expr, error) {
	lw := &lowerer{src: src}
	if n.Tag != parse.Program {
		lw.errorpf(n, "expected %s node, got %s", parse.Program, tagOf(n))
		return nil, diag.PackErrors(lw.errors)
	}
	exprs := make([]Expr, 0, len(n.Children))
	for _, ch := range n.Children {
		if e := lw.expr(ch); e != nil {
			exprs = append(exprs, e)
		}
	}
	if len(lw.errors) > 0 {
		return nil, diag.PackErrors(lw.errors)
	}
	return exprs, nil
}

// LowerExpr lowers a single Expression node.
func LowerExpr(src parse.Source, n *parse.Node) (Expr, error) {
	lw := &lowerer{src: src}
	e := lw.expr(n)
	if len(lw.errors) > 0 {
		return nil, diag.PackErrors(lw.errors)
	}
	return e, nil
}

func (lw *lowerer) errorpf(r diag.Ranger, format string, args ...any) {
	lw.errors = append(lw.errors, &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(lw.src.Name, lw.src.Code, r)})
}

// Lowers an Expression node. It returns nil after reporting an error.
func (lw *lowerer) expr(n *parse.Node) Expr {
	if n.Tag != parse.Expression || len(n.Children) == 0 {
		lw.errorpf(n, "expected %s node, got %s", parse.Expression, tagOf(n))
		return nil
	}
	first := n.Children[0]
	switch {
	case len(n.Children) == 2:
		// "(" ")"
		return &Call{Ranging: n.Ranging}
	case first.Tag == parse.List:
		return lw.form(n, first.Children)
	case first.Tag == parse.Atom && len(first.Children) == 1:
		return atom(first.Children[0])
	}
	lw.errorpf(n, "unexpected %s node", tagOf(first))
	return nil
}

func atom(leaf *parse.Node) Expr {
	if leaf.Leaf.Kind == parse.Number {
		return &Literal{Kind: IntLiteral, Int: leaf.Leaf.Num, Ranging: leaf.Ranging}
	}
	return &Literal{Kind: Ident, Name: leaf.Leaf.Name, Ranging: leaf.Ranging}
}

// Lowers a parenthesized form with the given elements.
func (lw *lowerer) form(n *parse.Node, elems []*parse.Node) Expr {
	if name, ok := symbolName(elems[0]); ok {
		if special, ok := specialForms[name]; ok {
			return special(lw, n, elems)
		}
	}
	callee := lw.expr(elems[0])
	args := lw.exprs(elems[1:])
	if callee == nil || args == nil {
		return nil
	}
	return &Call{Callee: callee, Args: args, Ranging: n.Ranging}
}

// Lowers a sequence of Expression nodes. It returns nil if any of them is
// malformed, and an empty non-nil slice for an empty sequence.
func (lw *lowerer) exprs(ns []*parse.Node) []Expr {
	exprs := make([]Expr, 0, len(ns))
	ok := true
	for _, n := range ns {
		if e := lw.expr(n); e != nil {
			exprs = append(exprs, e)
		} else {
			ok = false
		}
	}
	if !ok {
		return nil
	}
	return exprs
}

// DefineForm = '(' 'define' Symbol Expression ')'
//            | '(' 'define' '(' Symbol { Symbol } ')' Expression { Expression } ')'
func lowerDefine(lw *lowerer, n *parse.Node, elems []*parse.Node) Expr {
	if len(elems) < 3 {
		lw.errorpf(n, "define needs a name and a value, or a head and a body")
		return nil
	}
	target := elems[1]
	if name, ok := symbolName(target); ok {
		if len(elems) > 3 {
			lw.errorpf(n, "define of a variable takes exactly 1 value, got %d", len(elems)-2)
			return nil
		}
		value := lw.expr(elems[2])
		if value == nil {
			return nil
		}
		return &DefineVar{Name: name, Value: value, Ranging: n.Ranging}
	}

	head := listElems(target)
	if len(head) == 0 {
		lw.errorpf(n, "define needs a symbol or a (name params...) head")
		return nil
	}
	names := make([]string, len(head))
	seen := make(map[string]bool, len(head))
	for i, h := range head {
		name, ok := symbolName(h)
		if !ok {
			lw.errorpf(n, "function head must only contain symbols")
			return nil
		}
		if i > 0 && seen[name] {
			lw.errorpf(n, "duplicate parameter %s", name)
			return nil
		}
		seen[name] = true
		names[i] = name
	}
	body := lw.exprs(elems[2:])
	if body == nil {
		return nil
	}
	return &DefineFunc{Name: names[0], Params: names[1:], Body: body, Ranging: n.Ranging}
}

// IfForm = '(' 'if' Expression Expression [ Expression ] ')'
func lowerIf(lw *lowerer, n *parse.Node, elems []*parse.Node) Expr {
	if len(elems) != 3 && len(elems) != 4 {
		lw.errorpf(n, "if takes 2 or 3 arguments, got %d", len(elems)-1)
		return nil
	}
	args := lw.exprs(elems[1:])
	if args == nil {
		return nil
	}
	i := &If{Test: args[0], Then: args[1], Ranging: n.Ranging}
	if len(args) == 3 {
		i.Else = args[2]
	}
	return i
}

// Returns the name if the Expression node is a lone symbol.
func symbolName(n *parse.Node) (string, bool) {
	if len(n.Children) != 1 {
		return "", false
	}
	a := n.Children[0]
	if a.Tag != parse.Atom || len(a.Children) != 1 {
		return "", false
	}
	leaf := a.Children[0].Leaf
	if leaf.Kind != parse.Symbol {
		return "", false
	}
	return leaf.Name, true
}

// Returns the elements of a non-empty parenthesized Expression node, or nil.
func listElems(n *parse.Node) []*parse.Node {
	if len(n.Children) == 1 && n.Children[0].Tag == parse.List {
		return n.Children[0].Children
	}
	return nil
}

func tagOf(n *parse.Node) string {
	if n.IsLeaf() {
		return "leaf"
	}
	return n.Tag
}
