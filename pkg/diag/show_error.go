package diag

import (
	"errors"
	"fmt"
	"io"
)

// ShowError shows an error. It uses the Show method if the error, or an
// error it wraps, implements Shower, and uses Complain to print the error
// message otherwise.
func ShowError(w io.Writer, err error) {
	var shower Shower
	if errors.As(err, &shower) {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintln(w, StyleMessage(msg))
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}

// StyleMessage wraps msg in the style used for error messages.
func StyleMessage(msg string) string {
	return messageStart + msg + messageEnd
}

// SetColor turns the styling of error messages and culprits on or off. It
// should be called before any output is shown.
func SetColor(on bool) {
	if on {
		messageStart, messageEnd = "\033[31;1m", "\033[m"
		culpritLineBegin, culpritLineEnd = "\033[1;4m", "\033[m"
	} else {
		messageStart, messageEnd = "", ""
		culpritLineBegin, culpritLineEnd = "", ""
	}
}
