package diag

import (
	"errors"
	"fmt"
	"testing"
)

type testErrorTag struct{}

func (testErrorTag) ErrorTag() string { return "test error" }

type testError = Error[testErrorTag]

type otherErrorTag struct{}

func (otherErrorTag) ErrorTag() string { return "other error" }

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &testError{
		Message: "bad list",
		Context: *contextInParen("[test]", "x (y)"),
	}

	wantErrorString := "Test error: [test]:1:3: bad list"
	if gotErrorString := err.Error(); gotErrorString != wantErrorString {
		t.Errorf("Error() -> %q, want %q", gotErrorString, wantErrorString)
	}

	wantRanging := Ranging{From: 2, To: 5}
	if gotRanging := err.Range(); gotRanging != wantRanging {
		t.Errorf("Range() -> %v, want %v", gotRanging, wantRanging)
	}

	if culprit := err.Culprit(); culprit != "(y)" {
		t.Errorf("Culprit() -> %q, want %q", culprit, "(y)")
	}

	wantShow := lines(
		"Test error: {bad list}",
		"  [test], line 1: x <(y)>",
	)
	if gotShow := err.Show(""); gotShow != wantShow {
		t.Errorf("Show() -> %q, want %q", gotShow, wantShow)
	}
}

func TestPackAndUnpackErrors(t *testing.T) {
	e1 := &testError{Message: "a", Context: *NewContext("[test]", "ab", Ranging{0, 1})}
	e2 := &testError{Message: "b", Context: *NewContext("[test]", "ab", Ranging{1, 2})}

	if err := PackErrors[testErrorTag](nil); err != nil {
		t.Errorf("PackErrors(nil) -> %v, want nil", err)
	}
	if err := PackErrors([]*testError{e1}); err != error(e1) {
		t.Errorf("PackErrors of one error -> %v, want the error itself", err)
	}

	packed := PackErrors([]*testError{e1, e2})
	wantMsg := "multiple test errors: [test]:1:1: a; [test]:1:2: b"
	if packed.Error() != wantMsg {
		t.Errorf("packed.Error() -> %q, want %q", packed.Error(), wantMsg)
	}
	unpacked := UnpackErrors[testErrorTag](packed)
	if len(unpacked) != 2 || unpacked[0] != e1 || unpacked[1] != e2 {
		t.Errorf("UnpackErrors -> %v, want [e1 e2]", unpacked)
	}

	wrapped := fmt.Errorf("wrapped: %w", e1)
	if got := UnpackErrors[testErrorTag](wrapped); len(got) != 1 || got[0] != e1 {
		t.Errorf("UnpackErrors of wrapped error -> %v", got)
	}
	if got := UnpackErrors[otherErrorTag](e1); got != nil {
		t.Errorf("UnpackErrors with wrong tag -> %v, want nil", got)
	}
	if got := UnpackErrors[testErrorTag](errors.New("x")); got != nil {
		t.Errorf("UnpackErrors of plain error -> %v, want nil", got)
	}
}
