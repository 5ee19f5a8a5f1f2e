package eval_test

import (
	"testing"

	. "src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/eval/errs"
	. "src.frdlisp.dev/pkg/eval/evaltest"
)

func TestComparison(t *testing.T) {
	Test(t,
		That("(= 1 1) (= 1 2) (= 2 2 2)").Puts(Bool(true), Bool(false), Bool(true)),
		That("(= true true) (= true false)").Puts(Bool(true), Bool(false)),
		That("(= 1)").Puts(Bool(true)),
		That("(= 1 true)").Throws(errs.TypeMismatch{
			What: "argument 2 of =", Want: "int", Got: "bool"}),
		That("(= + +)").Throws(errs.TypeMismatch{
			What: "argument 1 of =", Want: "int or bool", Got: "builtin"}),
		That("(< 1 2 3) (< 1 3 2)").Puts(Bool(true), Bool(false)),
		That("(> 3 2 1) (> 1 1)").Puts(Bool(true), Bool(false)),
		That("(< true 1)").Throws(ErrorWithType(errs.TypeMismatch{})),
	)
}

func TestLogic(t *testing.T) {
	Test(t,
		That("(not true) (not false)").Puts(Bool(false), Bool(true)),
		That("(not 1)").Throws(errs.TypeMismatch{
			What: "argument 1 of not", Want: "bool", Got: "int"}),
		That("(and) (and true true) (and true false)").Puts(Bool(true), Bool(true), Bool(false)),
		That("(or) (or false false) (or false true)").Puts(Bool(false), Bool(false), Bool(true)),
		That("(and true 1)").Throws(ErrorWithType(errs.TypeMismatch{})),
	)
}
