package evaltest

import (
	"fmt"
	"reflect"
	"strings"

	"src.frdlisp.dev/pkg/eval"
)

// ValueMatcher is a value that can be passed to [Case.Puts] and has its own
// matching semantics.
type ValueMatcher interface{ matchValue(eval.Value) bool }

// Anything matches any value.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(eval.Value) bool { return true }
func (anything) String() string             { return "anything" }

// FnNamed matches a function defined in frdlisp with the given name.
func FnNamed(name string) ValueMatcher { return fnNamed{name} }

type fnNamed struct{ name string }

func (f fnNamed) matchValue(v eval.Value) bool {
	fn, ok := v.(*eval.Closure)
	return ok && fn.Name == f.name
}

func (f fnNamed) String() string { return "<fn " + f.name + ">" }

type errorMatcher interface{ matchError(error) bool }

// An errorMatcher for exceptions.
type exc struct {
	reason error
	stacks []string
}

func (e exc) Error() string {
	if len(e.stacks) == 0 {
		return fmt.Sprintf("exception with reason %v", e.reason)
	}
	return fmt.Sprintf("exception with reason %v and stacks %v", e.reason, e.stacks)
}

func (e exc) matchError(e2 error) bool {
	if e2, ok := e2.(*eval.Exception); ok {
		return matchErr(e.reason, e2.Reason) &&
			(len(e.stacks) == 0 ||
				reflect.DeepEqual(e.stacks, getStackTexts(e2.StackTrace)))
	}
	return false
}

func getStackTexts(tb *eval.StackTrace) []string {
	texts := []string{}
	for tb != nil {
		texts = append(texts, tb.Head.Culprit())
		tb = tb.Next
	}
	return texts
}

// An errorMatcher for compilation errors.
type compilationError struct {
	msgs []string
}

func (e compilationError) Error() string {
	return fmt.Sprintf("compilation error with messages containing %q", e.msgs)
}

func (e compilationError) matchError(e2 error) bool {
	if e2 == nil {
		return false
	}
	for _, msg := range e.msgs {
		if !strings.Contains(e2.Error(), msg) {
			return false
		}
	}
	return true
}

// AnyError is an error that can be passed to Case.Throws or Case.Yields to
// match any error.
var AnyError error = anyError{}

type anyError struct{}

func (anyError) Error() string           { return "any error" }
func (anyError) matchError(e error) bool { return e != nil }

// ErrorWithType returns an error that can be passed to Case.Throws to match
// any error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

// An errorMatcher for any error with the given type.
type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	return reflect.TypeOf(e.v) == reflect.TypeOf(e2)
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to match
// any error with the given message.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

// An errorMatcher for any error with the given message.
type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && e.msg == e2.Error()
}
