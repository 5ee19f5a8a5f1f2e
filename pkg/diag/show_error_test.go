package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestShowError_Shower(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")
	var sb strings.Builder
	ShowError(&sb, &testError{
		Message: "oops", Context: *contextInParen("[test]", "(x)")})
	want := "Test error: {oops}\n  [test], line 1: <(x)>\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestShowError_PlainError(t *testing.T) {
	setMessageMarkers(t, "{", "}")
	var sb strings.Builder
	ShowError(&sb, errors.New("plain"))
	if sb.String() != "{plain}\n" {
		t.Errorf("got %q, want %q", sb.String(), "{plain}\n")
	}
}

func TestSetColor(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	SetColor(false)
	var sb strings.Builder
	ShowError(&sb, &testError{
		Message: "oops", Context: *contextInParen("[test]", "(x)")})
	if want := "Test error: oops\n  [test], line 1: (x)\n"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}

	SetColor(true)
	if got := StyleMessage("m"); got != "\033[31;1mm\033[m" {
		t.Errorf("StyleMessage -> %q", got)
	}
}
