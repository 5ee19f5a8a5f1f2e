package eval

import (
	"src.frdlisp.dev/pkg/ast"
	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/grammar"
	"src.frdlisp.dev/pkg/lex"
	"src.frdlisp.dev/pkg/parse"
)

// CompilationError is an error returned by Compile, with the phase that
// produced it erased.
type CompilationError struct {
	// Phase is the error tag, like "syntax error".
	Phase   string
	Message string
	Context diag.Context
	Partial bool
}

// UnpackCompilationErrors returns the errors in an error returned by Compile,
// in source order within each phase. It returns nil for other errors.
func UnpackCompilationErrors(err error) []CompilationError {
	if err == nil {
		return nil
	}
	var all []CompilationError
	all = appendUnpacked[lex.ErrorTag](all, err)
	all = appendUnpacked[grammar.ErrorTag](all, err)
	all = appendUnpacked[parse.NumberErrorTag](all, err)
	all = appendUnpacked[ast.ErrorTag](all, err)
	return all
}

func appendUnpacked[T diag.ErrorTag](all []CompilationError, err error) []CompilationError {
	var tag T
	for _, e := range diag.UnpackErrors[T](err) {
		all = append(all, CompilationError{tag.ErrorTag(), e.Message, e.Context, e.Partial})
	}
	return all
}
