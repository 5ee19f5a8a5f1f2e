package diag

import (
	"strings"
	"testing"
)

func setCulpritMarkers(t *testing.T, begin, end string) {
	t.Helper()
	saveBegin, saveEnd := culpritLineBegin, culpritLineEnd
	t.Cleanup(func() { culpritLineBegin, culpritLineEnd = saveBegin, saveEnd })
	culpritLineBegin, culpritLineEnd = begin, end
}

func setMessageMarkers(t *testing.T, begin, end string) {
	t.Helper()
	saveBegin, saveEnd := messageStart, messageEnd
	t.Cleanup(func() { messageStart, messageEnd = saveBegin, saveEnd })
	messageStart, messageEnd = begin, end
}

// Returns a Context with the given name and source, and a range for the part
// between ( and ).
func contextInParen(name, src string) *Context {
	return NewContext(name, src,
		Ranging{strings.Index(src, "("), strings.Index(src, ")") + 1})
}

func lines(lines ...string) string {
	return strings.Join(lines, "\n")
}
