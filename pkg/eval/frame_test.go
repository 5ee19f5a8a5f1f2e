package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrame(t *testing.T) {
	global := NewFrame(nil)
	global.Set("a", Int(1))
	global.Set("b", Int(2))
	local := NewFrame(global)
	local.Set("b", Int(20))
	local.Set("c", Int(30))

	tests := []struct {
		f     *Frame
		name  string
		want  Value
		found bool
	}{
		{local, "a", Int(1), true},
		{local, "b", Int(20), true},
		{global, "b", Int(2), true},
		{global, "c", nil, false},
		{local, "d", nil, false},
	}
	for _, test := range tests {
		v, ok := test.f.Get(test.name)
		if v != test.want || ok != test.found {
			t.Errorf("Get(%q) -> (%v, %v), want (%v, %v)", test.name, v, ok, test.want, test.found)
		}
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, local.Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
	if local.Parent() != global || global.Parent() != nil {
		t.Errorf("wrong parents")
	}
}

func TestNewGlobal(t *testing.T) {
	global := NewGlobal()
	for _, name := range []string{"+", "-", "*", "/", "=", "<", ">", "not", "and", "or", "mod", "abs", "min", "max"} {
		v, ok := global.Get(name)
		if !ok {
			t.Errorf("%s is not bound", name)
			continue
		}
		if b, ok := v.(*Builtin); !ok || b.Name != name {
			t.Errorf("%s is bound to %v", name, Repr(v))
		}
		if BuiltinDoc[name] == "" {
			t.Errorf("%s has no documentation", name)
		}
	}
	if len(global.Names()) != len(builtins) {
		t.Errorf("global frame has %d names, want %d", len(global.Names()), len(builtins))
	}
}

func TestRepr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "nil"},
		{Nil{}, "nil"},
		{Int(-12), "-12"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{&Builtin{Name: "+"}, "<builtin +>"},
		{&Closure{Name: "sq"}, "<fn sq>"},
	}
	for _, test := range tests {
		if got := Repr(test.v); got != test.want {
			t.Errorf("Repr(%#v) -> %q, want %q", test.v, got, test.want)
		}
	}
}
