package grammar

import (
	"fmt"
	"sort"

	"src.frdlisp.dev/pkg/lex"
)

// Alternative is one right-hand side of a production: an ordered sequence of
// symbols. A symbol names a nonterminal if the Table has rules for it, and a
// token kind otherwise.
type Alternative []string

// HookKey identifies one alternative of one nonterminal.
type HookKey struct {
	Nonterminal string
	Alt         int
}

// Hook reshapes a node right after it has been reduced.
type Hook[L any] func(*Node[L]) *Node[L]

// Table is a declarative grammar. It is pure data; Parse interprets it.
type Table[L any] struct {
	// Start is the nonterminal a whole input must reduce to.
	Start string
	// Rules maps each nonterminal to its alternatives, in the order they are
	// tried.
	Rules map[string][]Alternative
	// Leaf builds the payload of the leaf node for a matched token.
	Leaf func(lex.Token) (L, error)
	// Hooks are applied to nodes after successful reductions.
	Hooks map[HookKey]Hook[L]
}

// IsNonterminal reports whether the symbol has rules in the table.
func (t *Table[L]) IsNonterminal(sym string) bool {
	_, ok := t.Rules[sym]
	return ok
}

// Validate checks that the table is usable by Parse: the start symbol has
// rules, every hook refers to an existing alternative, and no nonterminal is
// left-recursive (which would make Parse recurse forever).
func (t *Table[L]) Validate() error {
	if !t.IsNonterminal(t.Start) {
		return fmt.Errorf("start symbol %q has no rules", t.Start)
	}
	if t.Leaf == nil {
		return fmt.Errorf("no leaf constructor")
	}
	for key := range t.Hooks {
		if key.Alt < 0 || key.Alt >= len(t.Rules[key.Nonterminal]) {
			return fmt.Errorf("hook for nonexistent alternative %d of %q",
				key.Alt, key.Nonterminal)
		}
	}
	for _, nt := range sortedKeys(t.Rules) {
		if path := t.leftRecursion(nt, []string{nt}); path != nil {
			return fmt.Errorf("left recursion: %v", path)
		}
	}
	return nil
}

// Returns a path of nonterminals that reaches the first element of path again
// only through the leftmost symbols of alternatives, or nil.
func (t *Table[L]) leftRecursion(nt string, path []string) []string {
	for _, alt := range t.Rules[nt] {
		if len(alt) == 0 || !t.IsNonterminal(alt[0]) {
			continue
		}
		next := alt[0]
		if next == path[0] {
			return append(path, next)
		}
		if contains(path, next) {
			// A cycle not involving path[0]; it is reported when checking
			// its own members.
			continue
		}
		if found := t.leftRecursion(next, append(path, next)); found != nil {
			return found
		}
	}
	return nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
