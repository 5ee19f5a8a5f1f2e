package grammar

import (
	"strings"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/lex"
)

// Node is a node of a parse tree. A leaf node wraps a token; an interior node
// is tagged with the nonterminal that produced it.
type Node[L any] struct {
	// Tag is the nonterminal of an interior node, and empty for leaves.
	Tag string
	// Children of an interior node, in source order.
	Children []*Node[L]
	// Token and Leaf are only meaningful for leaf nodes. Leaf is the payload
	// built by the Table's Leaf function.
	Token lex.Token
	Leaf  L
	diag.Ranging
}

// IsLeaf reports whether the node is a leaf.
func (n *Node[L]) IsLeaf() bool { return n.Tag == "" }

// String returns a compact rendering of the tree, like
// Program[Expression[Atom[Id("x")]]].
func (n *Node[L]) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node[L]) write(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.Token.String())
		return
	}
	sb.WriteString(n.Tag)
	sb.WriteByte('[')
	for i, ch := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		ch.write(sb)
	}
	sb.WriteByte(']')
}

// FlattenRight is a Hook for right-recursive alternatives like
// List -> Item List. It splices the children of the last child into the node,
// if the last child has the same tag as the node.
func FlattenRight[L any](n *Node[L]) *Node[L] {
	last := len(n.Children) - 1
	if last < 0 || n.Children[last].Tag != n.Tag {
		return n
	}
	children := make([]*Node[L], 0, last+len(n.Children[last].Children))
	children = append(children, n.Children[:last]...)
	children = append(children, n.Children[last].Children...)
	return &Node[L]{Tag: n.Tag, Children: children, Ranging: n.Ranging}
}

// Unwrap returns a Hook that replaces the children of a node with the single
// child at index i. It is used to drop delimiters around an inner node.
func Unwrap[L any](i int) Hook[L] {
	return func(n *Node[L]) *Node[L] {
		return &Node[L]{Tag: n.Tag, Children: []*Node[L]{n.Children[i]}, Ranging: n.Ranging}
	}
}
