package eval

// Comparison and boolean builtins. Comparisons are chained: (< a b c) is true
// when a < b and b < c.

import (
	"src.frdlisp.dev/pkg/eval/errs"
)

var predBuiltins = []*Builtin{
	{"=", eq},
	{"<", compare("<", func(a, b int64) bool { return a < b })},
	{">", compare(">", func(a, b int64) bool { return a > b })},
	{"not", not},
	{"and", logic("and", true)},
	{"or", logic("or", false)},
}

// = compares integers or booleans; all arguments must have the kind of the
// first one.
func eq(args []Value) (Value, error) {
	if err := checkArity("=", args, 1, -1); err != nil {
		return nil, err
	}
	switch args[0].(type) {
	case Int, Bool:
	default:
		return nil, errs.TypeMismatch{
			What: argumentWhat("=", 0), Want: "int or bool", Got: args[0].Kind()}
	}
	for i, arg := range args[1:] {
		if arg.Kind() != args[0].Kind() {
			return nil, errs.TypeMismatch{
				What: argumentWhat("=", i+1), Want: args[0].Kind(), Got: arg.Kind()}
		}
	}
	for i := 1; i < len(args); i++ {
		if args[i] != args[i-1] {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func compare(name string, holds func(a, b int64) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := checkArity(name, args, 1, -1); err != nil {
			return nil, err
		}
		nums, err := intArgs(name, args)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(nums); i++ {
			if !holds(nums[i-1], nums[i]) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func not(args []Value) (Value, error) {
	if err := checkArity("not", args, 1, 1); err != nil {
		return nil, err
	}
	bools, err := boolArgs("not", args)
	if err != nil {
		return nil, err
	}
	return Bool(!bools[0]), nil
}

// Returns the implementation of and (when unit is true) or or (when unit is
// false). Arguments are already evaluated, so neither short-circuits.
func logic(name string, unit bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		bools, err := boolArgs(name, args)
		if err != nil {
			return nil, err
		}
		for _, b := range bools {
			if b != unit {
				return Bool(b), nil
			}
		}
		return Bool(unit), nil
	}
}

func boolArgs(name string, args []Value) ([]bool, error) {
	bools := make([]bool, len(args))
	for i, arg := range args {
		b, ok := arg.(Bool)
		if !ok {
			return nil, errs.TypeMismatch{
				What: argumentWhat(name, i), Want: "bool", Got: arg.Kind()}
		}
		bools[i] = bool(b)
	}
	return bools, nil
}
