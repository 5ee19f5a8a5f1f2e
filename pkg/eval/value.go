package eval

import (
	"strconv"

	"src.frdlisp.dev/pkg/ast"
	"src.frdlisp.dev/pkg/parse"
)

// Value is a frdlisp value. The set of implementations is closed; use a type
// switch to tell them apart.
//
// Values are immutable once created, and are shared by reference.
type Value interface {
	// Kind returns the name of the kind of the value, used in error messages.
	Kind() string
	// Repr returns the printed representation of the value.
	Repr() string
	isValue()
}

// Nil is the value of definitions, of if without a taken branch, and of the
// empty list.
type Nil struct{}

// Int is an integer.
type Int int64

// Bool is a boolean.
type Bool bool

// Builtin is a function implemented in Go. It receives its arguments already
// evaluated.
type Builtin struct {
	Name string
	Impl func(args []Value) (Value, error)
}

// Closure is a function defined in frdlisp. It captures the frame active at
// the point of its definition.
type Closure struct {
	Name     string
	Params   []string
	Body     []ast.Expr
	Captured *Frame
	// Source the body was lowered from, for error contexts.
	Src parse.Source
}

func (Nil) isValue()      {}
func (Int) isValue()      {}
func (Bool) isValue()     {}
func (*Builtin) isValue() {}
func (*Closure) isValue() {}

func (Nil) Kind() string      { return "nil" }
func (Int) Kind() string      { return "int" }
func (Bool) Kind() string     { return "bool" }
func (*Builtin) Kind() string { return "builtin" }
func (*Closure) Kind() string { return "fn" }

func (Nil) Repr() string        { return "nil" }
func (i Int) Repr() string      { return strconv.FormatInt(int64(i), 10) }
func (b Bool) Repr() string     { return strconv.FormatBool(bool(b)) }
func (b *Builtin) Repr() string { return "<builtin " + b.Name + ">" }
func (c *Closure) Repr() string { return "<fn " + c.Name + ">" }

// Repr returns the printed representation of v. It is like v.Repr, but also
// accepts nil.
func Repr(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Repr()
}
