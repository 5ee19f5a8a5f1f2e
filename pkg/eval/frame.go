package eval

import "sort"

// Frame is one level of the environment: a mutable mapping from names to
// values, with an optional parent.
//
// Frames are shared by reference. The global frame is shared by everything
// evaluated in one Evaler, and a frame captured by closures stays alive as
// long as any of them does.
type Frame struct {
	parent *Frame
	names  map[string]Value
}

// NewFrame creates an empty frame with the given parent, which may be nil.
func NewFrame(parent *Frame) *Frame {
	return &Frame{parent, map[string]Value{}}
}

// NewGlobal creates a root frame with all the builtins bound.
func NewGlobal() *Frame {
	f := NewFrame(nil)
	for _, b := range builtins {
		f.Set(b.Name, b)
	}
	return f
}

// Parent returns the parent of the frame, or nil for a root frame.
func (f *Frame) Parent() *Frame { return f.parent }

// Get looks up name in the frame and its ancestors, nearest first.
func (f *Frame) Get(name string) (Value, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.names[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in the frame itself, replacing any previous binding in it.
// Bindings in ancestors are never touched; a binding here shadows them.
func (f *Frame) Set(name string, v Value) {
	f.names[name] = v
}

// Names returns all names visible from the frame, sorted.
func (f *Frame) Names() []string {
	seen := map[string]bool{}
	var names []string
	for ; f != nil; f = f.parent {
		for name := range f.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
