package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/parse"
)

func lower(code string) ([]Expr, error) {
	src := parse.SourceForTest(code)
	n, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return Lower(src, n)
}

var lowerTests = []struct {
	code string
	want []string
}{
	{"", []string{}},
	{"1,000 x +", []string{"1000", "x", "+"}},
	{"()", []string{"()"}},
	{"(+ 1 2)", []string{"(+ 1 2)"}},
	{"(f)", []string{"(f)"}},
	{"((f 1) 2)", []string{"((f 1) 2)"}},
	{"(define x 10)", []string{"(define x 10)"}},
	{"(define (sq x) (* x x))", []string{"(define (sq x) (* x x))"}},
	{"(define (f) 1 2)", []string{"(define (f) 1 2)"}},
	{"(if (= 1 1) 10 20)", []string{"(if (= 1 1) 10 20)"}},
	{"(if true 10)", []string{"(if true 10)"}},
	// Reserved words only matter at the head of a list.
	{"(f define if)", []string{"(f define if)"}},
	{"(define x 1) (+ x 1)", []string{"(define x 1)", "(+ x 1)"}},
}

func TestLower(t *testing.T) {
	for _, test := range lowerTests {
		exprs, err := lower(test.code)
		if err != nil {
			t.Errorf("Lower(%q) -> error %v", test.code, err)
			continue
		}
		got := make([]string, len(exprs))
		for i, e := range exprs {
			got[i] = e.String()
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Lower(%q) (-want +got):\n%s", test.code, diff)
		}
	}
}

func TestLower_Shapes(t *testing.T) {
	exprs, err := lower("(define (sq x) (* x x))\n(if t 1)\n()")
	if err != nil {
		t.Fatal(err)
	}
	def, ok := exprs[0].(*DefineFunc)
	if !ok {
		t.Fatalf("got %T, want *DefineFunc", exprs[0])
	}
	if def.Name != "sq" || !cmp.Equal(def.Params, []string{"x"}) || len(def.Body) != 1 {
		t.Errorf("got %+v", def)
	}
	if def.Range() != (diag.Ranging{From: 0, To: 23}) {
		t.Errorf("define range is %v, want 0-23", def.Range())
	}
	body, ok := def.Body[0].(*Call)
	if !ok || len(body.Args) != 2 {
		t.Errorf("body is %v, want a call with 2 args", def.Body[0])
	}
	if lit := body.Callee.(*Literal); lit.Kind != Ident || lit.Name != "*" {
		t.Errorf("callee is %+v, want identifier *", lit)
	}

	i, ok := exprs[1].(*If)
	if !ok || i.Else != nil {
		t.Errorf("got %v, want an If without else", exprs[1])
	}

	empty, ok := exprs[2].(*Call)
	if !ok || empty.Callee != nil || len(empty.Args) != 0 {
		t.Errorf("got %v, want an empty Call", exprs[2])
	}
}

func TestLower_Errors(t *testing.T) {
	tests := []struct {
		code        string
		wantMsg     string
		wantCulprit string
	}{
		{"(define)", "define needs a name and a value, or a head and a body", "(define)"},
		{"(define x)", "define needs a name and a value, or a head and a body", "(define x)"},
		{"(define x 1 2)", "define of a variable takes exactly 1 value, got 2", "(define x 1 2)"},
		{"(define 1 2)", "define needs a symbol or a (name params...) head", "(define 1 2)"},
		{"(define () 2)", "define needs a symbol or a (name params...) head", "(define () 2)"},
		{"(define (f 1) 2)", "function head must only contain symbols", "(define (f 1) 2)"},
		{"(define (f x x) x)", "duplicate parameter x", "(define (f x x) x)"},
		{"(if)", "if takes 2 or 3 arguments, got 0", "(if)"},
		{"(if 1)", "if takes 2 or 3 arguments, got 1", "(if 1)"},
		{"(if 1 2 3 4)", "if takes 2 or 3 arguments, got 4", "(if 1 2 3 4)"},
		{"(f (if))", "if takes 2 or 3 arguments, got 0", "(if)"},
	}
	for _, test := range tests {
		_, err := lower(test.code)
		errs := diag.UnpackErrors[ErrorTag](err)
		if len(errs) != 1 {
			t.Errorf("Lower(%q) -> %v, want one *Error", test.code, err)
			continue
		}
		if errs[0].Message != test.wantMsg {
			t.Errorf("Lower(%q) -> message %q, want %q", test.code, errs[0].Message, test.wantMsg)
		}
		if errs[0].Culprit() != test.wantCulprit {
			t.Errorf("Lower(%q) -> culprit %q, want %q", test.code, errs[0].Culprit(), test.wantCulprit)
		}
	}
}

func TestLower_ReportsAllMalformedForms(t *testing.T) {
	_, err := lower("(if) (+ 1 2) (define)")
	errs := diag.UnpackErrors[ErrorTag](err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	if errs[0].Culprit() != "(if)" || errs[1].Culprit() != "(define)" {
		t.Errorf("culprits are %q and %q", errs[0].Culprit(), errs[1].Culprit())
	}
}

func TestLowerExpr(t *testing.T) {
	src := parse.SourceForTest("(g 1)")
	n, err := parse.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	e, err := LowerExpr(src, n.Children[0])
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "(g 1)" {
		t.Errorf("got %v, want (g 1)", e)
	}

	_, err = LowerExpr(src, n)
	if len(diag.UnpackErrors[ErrorTag](err)) != 1 {
		t.Errorf("lowering a Program node as an expression -> %v, want an error", err)
	}
}

func TestIsSpecial(t *testing.T) {
	for name, want := range map[string]bool{"define": true, "if": true, "f": false, "+": false} {
		if got := IsSpecial(name); got != want {
			t.Errorf("IsSpecial(%q) -> %v, want %v", name, got, want)
		}
	}
}
