package diag

import (
	"errors"
	"fmt"
	"strings"

	"src.frdlisp.dev/pkg/strutil"
)

// Error represents an error with context that can be showed. The type
// parameter T identifies the phase that produced the error, so that errors
// from different phases are different Go types.
type Error[T ErrorTag] struct {
	Message string
	Context Context
	// Indicates whether the error may be caused by partial input. More
	// formally, this field is true iff fixing the error requires appending
	// text at the end of the source.
	Partial bool
}

// ErrorTag is used to parameterize [Error] into different concrete types. The
// ErrorTag method is called with a zero receiver, and its return value is used
// in [Error.Error] and [Error.Show].
type ErrorTag interface {
	ErrorTag() string
}

// RangeError combines error with [Ranger].
type RangeError interface {
	error
	Ranger
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	return errorTagTitle[T]() + ": " + e.Context.describeStart() + ": " + e.Message
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Culprit returns the part of the source the error is about.
func (e *Error[T]) Culprit() string {
	return e.Context.Culprit()
}

var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error[T]) Show(indent string) string {
	return errorTagTitle[T]() + ": " + messageStart + e.Message + messageEnd +
		"\n" + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

func errorTagTitle[T ErrorTag]() string {
	var t T
	return strutil.Title(t.ErrorTag())
}

// PackErrors packs multiple instances of [Error] with the same tag into one
// error:
//
//   - If called with no errors, it returns nil.
//
//   - If called with one error, it returns that error itself.
//
//   - If called with more than one [Error], it returns an error that combines
//     all of them. The returned error also implements [Shower], and its Error
//     and Show methods only print the tag once.
func PackErrors[T ErrorTag](errs []*Error[T]) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return append(multiError[T](nil), errs...)
	}
}

// UnpackErrors returns the constituent [Error] instances in an error if it is
// built from [PackErrors], or wraps one. Otherwise it returns nil.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	var one *Error[T]
	var many multiError[T]
	switch {
	case errors.As(err, &many):
		return append([]*Error[T](nil), many...)
	case errors.As(err, &one):
		return []*Error[T]{one}
	default:
		return nil
	}
}

type multiError[T ErrorTag] []*Error[T]

func (me multiError[T]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "multiple %ss: ", tagOf[T]())
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Context.describeStart() + ": " + e.Message)
	}
	return sb.String()
}

func (me multiError[T]) Show(indent string) string {
	var sb strings.Builder
	sb.WriteString("Multiple " + tagOf[T]() + "s:")
	indent += "  "
	for _, e := range me {
		sb.WriteString("\n" + indent + messageStart + e.Message + messageEnd +
			"\n" + indent + "  " + e.Context.ShowCompact(indent+"  "))
	}
	return sb.String()
}

func tagOf[T ErrorTag]() string {
	var t T
	return t.ErrorTag()
}
