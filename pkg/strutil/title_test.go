package strutil

import (
	"testing"

	. "src.frdlisp.dev/pkg/tt"
)

func TestTitle(t *testing.T) {
	Test(t, Fn("Title", Title), Table{
		Args("").Rets(""),
		Args("lex error").Rets("Lex error"),
		Args("\xf0").Rets("\xf0"),
		Args("FOO").Rets("FOO"),
	})
}
