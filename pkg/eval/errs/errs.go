// Package errs declares error types used as exception reasons.
package errs

import (
	"fmt"
	"strconv"
)

// BadValue encodes an error where the value does not meet a requirement.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf("bad value: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

// ErrDivideByZero is the reason of divisions and modulos by zero.
var ErrDivideByZero = BadValue{What: "divisor", Valid: "number other than 0", Actual: "0"}

// ArityMismatch encodes an error where the expected number of values is out of
// the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// UnboundSymbol encodes a reference to a name that is not bound in any
// visible frame.
type UnboundSymbol struct {
	Name string
}

func (e UnboundSymbol) Error() string {
	return "unbound symbol: " + e.Name
}

// NotCallable encodes an attempt to call a value that is neither a builtin nor
// a function.
type NotCallable struct {
	Repr string
	Kind string
}

func (e NotCallable) Error() string {
	return fmt.Sprintf("not callable: %s is %s", e.Repr, e.Kind)
}

// TypeMismatch encodes an error where a value has the wrong kind.
type TypeMismatch struct {
	What string
	Want string
	Got  string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: %s must be %s, but is %s", e.What, e.Want, e.Got)
}

// StackOverflow encodes an error where function calls nest deeper than
// allowed.
type StackOverflow struct {
	Depth int
}

func (e StackOverflow) Error() string {
	return fmt.Sprintf("stack overflow: calls nested deeper than %d", e.Depth)
}
