package must

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOK(t *testing.T) {
	OK(nil)
	if OK1(42, nil) != 42 {
		t.Errorf("OK1 didn't return the value")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("OK didn't panic on an error")
		}
	}()
	OK(errors.New("bad"))
}

func TestWriteAndReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sub", "file")
	WriteFile(name, "content")
	if got := ReadFileString(name); got != "content" {
		t.Errorf("got %q, want %q", got, "content")
	}
}
