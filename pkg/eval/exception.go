package eval

import (
	"strings"

	"src.frdlisp.dev/pkg/diag"
)

// Exception is the error returned when evaluating an expression fails. It
// wraps the reason, usually one of the types in the errs package, with the
// places where the failure happened.
type Exception struct {
	Reason     error
	StackTrace *StackTrace
}

// StackTrace is a linked list of diag.Context. The head is the innermost
// failing expression; each following node is the call that led to the one
// before it.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// Error returns the message of the reason.
func (exc *Exception) Error() string { return exc.Reason.Error() }

// Unwrap returns the reason, so that errors.As and errors.Is reach it.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Show shows the exception.
func (exc *Exception) Show(indent string) string {
	var sb strings.Builder
	sb.WriteString("Exception: ")
	if shower, ok := exc.Reason.(diag.Shower); ok {
		sb.WriteString(shower.Show(indent))
	} else {
		sb.WriteString(diag.StyleMessage(exc.Reason.Error()))
	}
	if exc.StackTrace != nil {
		sb.WriteString("\n")
		if exc.StackTrace.Next == nil {
			sb.WriteString(indent + "  " + exc.StackTrace.Head.ShowCompact(indent+"  "))
		} else {
			sb.WriteString(indent + "Traceback:")
			for tb := exc.StackTrace; tb != nil; tb = tb.Next {
				sb.WriteString("\n" + indent + "  ")
				sb.WriteString(tb.Head.Show(indent + "    "))
			}
		}
	}
	return sb.String()
}

// Reason returns the reason if err is an *Exception. Otherwise it returns err
// itself.
func Reason(err error) error {
	if exc, ok := err.(*Exception); ok {
		return exc.Reason
	}
	return err
}
