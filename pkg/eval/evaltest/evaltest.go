// Package evaltest provides a framework for testing frdlisp code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//		That("(+ 1 2)").Puts(eval.Int(3)),
//		That("x").Throws(errs.UnboundSymbol{Name: "x"}))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes []string
	setup func(ev *eval.Evaler)
	want  result
}

type result struct {
	// What each top-level expression should evaluate to: a value, a
	// ValueMatcher, or an error matched against the reason of an exception.
	Results []any
	// Whether the results are checked.
	checkResults bool

	CompilationError error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// evaluated separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "(+ 1 2)" evaluates to 3 reads:
//
//	That("(+ 1 2)").Puts(eval.Int(3))
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that evaluates the given code in addition, in the
// same Evaler. Multiple arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is evaluated.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// Puts returns an altered Case that requires the top-level expressions to
// evaluate to the given values without exceptions. The values may be
// ValueMatchers.
func (c Case) Puts(vs ...any) Case {
	c.want.Results = vs
	c.want.checkResults = true
	return c
}

// Yields returns an altered Case that requires the top-level expressions to
// have the given results. A result that is an error requires an exception
// whose reason matches it; anything else is matched like in Puts.
func (c Case) Yields(rs ...any) Case {
	c.want.Results = rs
	c.want.checkResults = true
	return c
}

// Throws returns an altered Case that requires the last top-level expression
// to throw an exception whose reason matches the given error. The reason
// supports special matcher values constructed by functions like
// ErrorWithMessage.
//
// If at least one stack trace string is given, the exception must also have a
// stack trace matching the given source fragments, frame by frame (innermost
// frame first).
func (c Case) Throws(reason error, stacks ...string) Case {
	c.want.Results = []any{exc{reason, stacks}}
	return c
}

// DoesNotCompile returns an altered Case that requires the source code to fail
// to compile with an error containing all the given message fragments.
func (c Case) DoesNotCompile(msgs ...string) Case {
	c.want.CompilationError = compilationError{msgs}
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ev := eval.NewEvaler()
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			results, compileErr := evalAndCollect(ev, tc.codes)

			if !matchErr(tc.want.CompilationError, compileErr) {
				t.Errorf("got compilation error %v, want %v",
					compileErr, tc.want.CompilationError)
			}
			switch {
			case tc.want.checkResults:
				if !matchResults(tc.want.Results, results) {
					t.Errorf("got results (-want +got):\n%s",
						cmp.Diff(describe(tc.want.Results), describeResults(results)))
				}
			case len(tc.want.Results) == 1:
				// Throws
				if len(results) == 0 || !matchResult(tc.want.Results[0], results[len(results)-1]) {
					t.Errorf("unexpected exception")
					if len(results) > 0 {
						last := results[len(results)-1]
						t.Logf("got: %T: %v", eval.Reason(last.Err), last.Err)
						if exc, ok := last.Err.(*eval.Exception); ok {
							t.Logf("stack trace: %#v", getStackTexts(exc.StackTrace))
						}
					}
					t.Errorf("want: %v", tc.want.Results[0])
				}
			}
		})
	}
}

func evalAndCollect(ev *eval.Evaler, codes []string) ([]eval.Result, error) {
	var results []eval.Result
	var compileErr error
	for _, code := range codes {
		rs, err := ev.Eval(parse.Source{Name: "[test]", Code: code})
		if err != nil {
			// NOTE: If multiple code pieces fail to compile, only the last
			// error is saved.
			compileErr = err
		}
		results = append(results, rs...)
	}
	return results, compileErr
}

func matchResults(want []any, got []eval.Result) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !matchResult(want[i], got[i]) {
			return false
		}
	}
	return true
}

func matchResult(want any, got eval.Result) bool {
	if wantErr, ok := want.(error); ok {
		if got.Err == nil {
			return false
		}
		if _, isExc := wantErr.(exc); isExc {
			return matchErr(wantErr, got.Err)
		}
		return matchErr(wantErr, eval.Reason(got.Err))
	}
	if got.Err != nil {
		return false
	}
	if m, ok := want.(ValueMatcher); ok {
		return m.matchValue(got.Value)
	}
	return reflect.DeepEqual(want, got.Value)
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}

func describe(want []any) []string {
	ss := make([]string, len(want))
	for i, w := range want {
		switch w := w.(type) {
		case eval.Value:
			ss[i] = w.Repr()
		case error:
			ss[i] = "error: " + w.Error()
		default:
			ss[i] = fmt.Sprint(w)
		}
	}
	return ss
}

func describeResults(results []eval.Result) []string {
	ss := make([]string, len(results))
	for i, r := range results {
		if r.Err != nil {
			ss[i] = "error: " + r.Err.Error()
		} else {
			ss[i] = eval.Repr(r.Value)
		}
	}
	return ss
}
