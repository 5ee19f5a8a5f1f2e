// Package eval evaluates frdlisp code.
//
// Source code goes through lexing, parsing and lowering before any of it is
// evaluated; see [Evaler.Compile]. Each top-level expression is then evaluated
// against the global frame of the Evaler, and fails or succeeds on its own.
package eval

import (
	"fmt"
	"os"

	"src.frdlisp.dev/pkg/ast"
	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/eval/errs"
	"src.frdlisp.dev/pkg/logutil"
	"src.frdlisp.dev/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// DefaultMaxDepth is the default value of Evaler.MaxDepth.
const DefaultMaxDepth = 10000

// Evaler provides methods for evaluating code, and maintains state that is
// persisted between evaluation of different pieces of code. An Evaler is not
// safe for concurrent use.
type Evaler struct {
	// Global is the frame top-level code is evaluated in.
	Global *Frame
	// MaxDepth is the maximum depth of nested function calls. Calls beyond it
	// fail with errs.StackOverflow. If not positive, DefaultMaxDepth is used.
	MaxDepth int
}

// NewEvaler creates a new Evaler with a fresh global frame.
func NewEvaler() *Evaler {
	return &Evaler{Global: NewGlobal(), MaxDepth: DefaultMaxDepth}
}

// Result is the outcome of evaluating one top-level expression. Exactly one of
// Value and Err is non-nil.
type Result struct {
	Value Value
	Err   error
}

// Compile lexes, parses and lowers the source. The returned error, if not nil,
// is a *lex.Error, a *grammar.Error, a *parse.NumberError, or packs one or
// more *ast.Error values.
func (ev *Evaler) Compile(src parse.Source) ([]ast.Expr, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return ast.Lower(src, tree)
}

// Eval compiles the source, and if that succeeds evaluates each top-level
// expression in the global frame, in order. An expression that fails doesn't
// stop the following ones from being evaluated; its Result carries an
// *Exception.
func (ev *Evaler) Eval(src parse.Source) ([]Result, error) {
	exprs, err := ev.Compile(src)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(exprs))
	for i, expr := range exprs {
		logger.Printf("evaluating %s", expr)
		v, err := ev.EvalExpr(src, expr, ev.Global)
		if err != nil {
			logger.Printf("exception: %v", err)
			results[i].Err = err
		} else {
			results[i].Value = v
		}
	}
	return results, nil
}

// EvalFile reads the file at path and evaluates its content, using the path
// as the source name.
func (ev *Evaler) EvalFile(path string) ([]Result, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ev.Eval(parse.Source{Name: path, Code: string(code), IsFile: true})
}

// EvalExpr evaluates an expression lowered from src in the given frame. The
// returned error, if not nil, is an *Exception.
func (ev *Evaler) EvalExpr(src parse.Source, expr ast.Expr, f *Frame) (Value, error) {
	maxDepth := ev.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	ctx := &evalCtx{src: src, maxDepth: maxDepth}
	return ctx.eval(expr, f)
}

// State of one function invocation, or of a top-level expression.
type evalCtx struct {
	src parse.Source
	// Call sites leading here, innermost first.
	calls    *StackTrace
	depth    int
	maxDepth int
}

func (c *evalCtx) eval(expr ast.Expr, f *Frame) (Value, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return c.literal(expr, f)
	case *ast.Call:
		return c.call(expr, f)
	case *ast.DefineFunc:
		f.Set(expr.Name, &Closure{
			Name: expr.Name, Params: expr.Params, Body: expr.Body,
			Captured: f, Src: c.src})
		return Nil{}, nil
	case *ast.DefineVar:
		v, err := c.eval(expr.Value, f)
		if err != nil {
			return nil, err
		}
		f.Set(expr.Name, v)
		return Nil{}, nil
	case *ast.If:
		return c.ifForm(expr, f)
	default:
		return nil, c.errorf(expr, "unknown expression type %T", expr)
	}
}

func (c *evalCtx) literal(lit *ast.Literal, f *Frame) (Value, error) {
	if lit.Kind == ast.IntLiteral {
		return Int(lit.Int), nil
	}
	switch lit.Name {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if v, ok := f.Get(lit.Name); ok {
		return v, nil
	}
	return nil, c.exception(lit, errs.UnboundSymbol{Name: lit.Name})
}

func (c *evalCtx) call(call *ast.Call, f *Frame) (Value, error) {
	if call.Callee == nil {
		return Nil{}, nil
	}
	callee, err := c.eval(call.Callee, f)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		args[i], err = c.eval(arg, f)
		if err != nil {
			return nil, err
		}
	}

	switch callee := callee.(type) {
	case *Builtin:
		v, err := callee.Impl(args)
		if err != nil {
			return nil, c.exception(call, err)
		}
		return v, nil
	case *Closure:
		return c.callClosure(call, callee, args)
	default:
		return nil, c.exception(call.Callee,
			errs.NotCallable{Repr: Repr(callee), Kind: callee.Kind()})
	}
}

func (c *evalCtx) callClosure(call *ast.Call, fn *Closure, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, c.exception(call, errs.ArityMismatch{
			What:     "arguments of " + fn.Name,
			ValidLow: len(fn.Params), ValidHigh: len(fn.Params), Actual: len(args)})
	}
	if c.depth >= c.maxDepth {
		return nil, c.exception(call, errs.StackOverflow{Depth: c.maxDepth})
	}
	local := NewFrame(fn.Captured)
	for i, name := range fn.Params {
		local.Set(name, args[i])
	}
	inner := &evalCtx{
		src:      fn.Src,
		calls:    &StackTrace{c.context(call), c.calls},
		depth:    c.depth + 1,
		maxDepth: c.maxDepth,
	}
	var v Value = Nil{}
	for _, expr := range fn.Body {
		var err error
		v, err = inner.eval(expr, local)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (c *evalCtx) ifForm(i *ast.If, f *Frame) (Value, error) {
	test, err := c.eval(i.Test, f)
	if err != nil {
		return nil, err
	}
	b, ok := test.(Bool)
	if !ok {
		return nil, c.exception(i.Test, errs.TypeMismatch{
			What: "condition of if", Want: "bool", Got: test.Kind()})
	}
	switch {
	case bool(b):
		return c.eval(i.Then, f)
	case i.Else != nil:
		return c.eval(i.Else, f)
	default:
		return Nil{}, nil
	}
}

func (c *evalCtx) context(r diag.Ranger) *diag.Context {
	return diag.NewContext(c.src.Name, c.src.Code, r)
}

// Builds an *Exception for a failure at r. The reason must not be an
// *Exception.
func (c *evalCtx) exception(r diag.Ranger, reason error) *Exception {
	return &Exception{reason, &StackTrace{c.context(r), c.calls}}
}

func (c *evalCtx) errorf(r diag.Ranger, format string, args ...any) *Exception {
	return c.exception(r, fmt.Errorf(format, args...))
}
