package eval

import (
	"errors"
	"testing"

	"src.frdlisp.dev/pkg/parse"
)

func TestUnpackCompilationErrors(t *testing.T) {
	tests := []struct {
		code      string
		wantPhase []string
		partial   bool
	}{
		{"1.5", []string{"lex error"}, false},
		{"(+ 1", []string{"syntax error"}, true},
		{"99999999999999999999", []string{"number error"}, false},
		{"(if) (define)", []string{"malformed form", "malformed form"}, false},
	}
	for _, test := range tests {
		_, err := NewEvaler().Compile(parse.SourceForTest(test.code))
		got := UnpackCompilationErrors(err)
		if len(got) != len(test.wantPhase) {
			t.Errorf("%q: got %d errors, want %d", test.code, len(got), len(test.wantPhase))
			continue
		}
		for i, e := range got {
			if e.Phase != test.wantPhase[i] {
				t.Errorf("%q: error %d has phase %q, want %q", test.code, i, e.Phase, test.wantPhase[i])
			}
			if e.Partial != test.partial {
				t.Errorf("%q: error %d has Partial %v", test.code, i, e.Partial)
			}
			if e.Context.Name != "[test]" {
				t.Errorf("%q: error %d has context name %q", test.code, i, e.Context.Name)
			}
		}
	}

	if got := UnpackCompilationErrors(nil); got != nil {
		t.Errorf("UnpackCompilationErrors(nil) -> %v", got)
	}
	if got := UnpackCompilationErrors(errors.New("x")); got != nil {
		t.Errorf("UnpackCompilationErrors(plain) -> %v", got)
	}
}
