package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		t.Fatalf("TempDir returns %q which is not a dir", dir)
	}
	if resolved, _ := filepath.EvalSymlinks(dir); resolved != dir {
		t.Errorf("TempDir returns %q, but it resolves to %q", dir, resolved)
	}
	if err := os.WriteFile(filepath.Join(dir, "a"), []byte("test"), 0600); err != nil {
		t.Fatal(err)
	}
	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("dir %q still exists after cleanup", dir)
	}
}

func TestInTempDir(t *testing.T) {
	original, _ := os.Getwd()
	c := &cleanuper{}
	dir := InTempDir(c)
	if wd, _ := os.Getwd(); wd != dir {
		t.Errorf("pwd is %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("pwd restored to %q, want %q", wd, original)
	}
}

func TestApplyDir(t *testing.T) {
	InTempDir(t)
	ApplyDir(Dir{
		"a": "a content",
		"d": Dir{"b": "b content"},
	})
	for name, want := range map[string]string{"a": "a content", "d/b": "b content"} {
		content, err := os.ReadFile(name)
		if err != nil || string(content) != want {
			t.Errorf("file %s has content %q, error %v, want %q", name, content, err, want)
		}
	}
}

func TestSetenv(t *testing.T) {
	const name = "FRDLISP_TEST_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	if v := Setenv(c, name, "x"); v != "x" || os.Getenv(name) != "x" {
		t.Errorf("Setenv did not set the variable")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("variable not unset after cleanup")
	}
}

func TestTempHome(t *testing.T) {
	c := &cleanuper{}
	home := TempHome(c)
	if os.Getenv("HOME") != home {
		t.Errorf("HOME is %q, want %q", os.Getenv("HOME"), home)
	}
	c.runCleanups()
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("x is %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("x is %d after cleanup, want 1", x)
	}
}
