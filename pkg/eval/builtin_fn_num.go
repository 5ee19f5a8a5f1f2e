package eval

// Arithmetic builtins.

import (
	"strconv"

	"src.frdlisp.dev/pkg/eval/errs"
)

var numBuiltins = []*Builtin{
	{"+", plus},
	{"-", minus},
	{"*", times},
	{"/", slash},
	{"mod", mod},
	{"abs", abs},
	{"min", minFn},
	{"max", maxFn},
}

func plus(args []Value) (Value, error) {
	nums, err := intArgs("+", args)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range nums {
		sum += n
	}
	return Int(sum), nil
}

// With one argument, - negates it.
func minus(args []Value) (Value, error) {
	if err := checkArity("-", args, 1, -1); err != nil {
		return nil, err
	}
	nums, err := intArgs("-", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 1 {
		return Int(-nums[0]), nil
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc -= n
	}
	return Int(acc), nil
}

func times(args []Value) (Value, error) {
	nums, err := intArgs("*", args)
	if err != nil {
		return nil, err
	}
	prod := int64(1)
	for _, n := range nums {
		prod *= n
	}
	return Int(prod), nil
}

// Integer division, truncated towards zero.
func slash(args []Value) (Value, error) {
	if err := checkArity("/", args, 2, -1); err != nil {
		return nil, err
	}
	nums, err := intArgs("/", args)
	if err != nil {
		return nil, err
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return nil, errs.ErrDivideByZero
		}
		acc /= n
	}
	return Int(acc), nil
}

// The result of mod has the sign of the divisor.
func mod(args []Value) (Value, error) {
	if err := checkArity("mod", args, 2, 2); err != nil {
		return nil, err
	}
	nums, err := intArgs("mod", args)
	if err != nil {
		return nil, err
	}
	a, b := nums[0], nums[1]
	if b == 0 {
		return nil, errs.ErrDivideByZero
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return Int(m), nil
}

func abs(args []Value) (Value, error) {
	if err := checkArity("abs", args, 1, 1); err != nil {
		return nil, err
	}
	nums, err := intArgs("abs", args)
	if err != nil {
		return nil, err
	}
	if nums[0] < 0 {
		return Int(-nums[0]), nil
	}
	return Int(nums[0]), nil
}

func minFn(args []Value) (Value, error) {
	return extreme("min", args, func(a, b int64) bool { return a < b })
}

func maxFn(args []Value) (Value, error) {
	return extreme("max", args, func(a, b int64) bool { return a > b })
}

func extreme(name string, args []Value, better func(a, b int64) bool) (Value, error) {
	if err := checkArity(name, args, 1, -1); err != nil {
		return nil, err
	}
	nums, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if better(n, best) {
			best = n
		}
	}
	return Int(best), nil
}

func intArgs(name string, args []Value) ([]int64, error) {
	nums := make([]int64, len(args))
	for i, arg := range args {
		n, ok := arg.(Int)
		if !ok {
			return nil, errs.TypeMismatch{
				What: argumentWhat(name, i), Want: "int", Got: arg.Kind()}
		}
		nums[i] = int64(n)
	}
	return nums, nil
}

func checkArity(name string, args []Value, low, high int) error {
	if len(args) < low || (high != -1 && len(args) > high) {
		return errs.ArityMismatch{
			What: "arguments of " + name, ValidLow: low, ValidHigh: high, Actual: len(args)}
	}
	return nil
}

func argumentWhat(name string, i int) string {
	return "argument " + strconv.Itoa(i+1) + " of " + name
}
