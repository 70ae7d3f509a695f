package model

import (
	"github.com/coreyang/yangcore/internal/array"
	"github.com/coreyang/yangcore/internal/dict"
	"github.com/coreyang/yangcore/internal/typecompile"
	"github.com/coreyang/yangcore/internal/xpathadapter"
)

// NodeType tags a compiled data-tree vertex.
type NodeType int

const (
	Container NodeType = iota
	Leaf
	LeafList
	List
	Choice
	Case
	Uses
	Anyxml
	Anydata
)

// Status mirrors typecompile.Status for a node's own "status" substatement.
type Status = typecompile.Status

// Node is one compiled data-tree vertex. Sibling links form the §3
// invariant shape: Prev always points to the previous sibling, wrapping
// to the last sibling when this node is first; Next is nil past the last
// sibling. FirstChild is the parent's own entry point into its children's
// circular list; it is not itself part of the sibling-list invariant.
type Node struct {
	NodeType NodeType
	// Name is this node's interned identifier: per §3's data-model
	// invariant, every string field in the compiled tree is either the
	// dictionary's nil sentinel or a pointer returned by the owning
	// Context's Dictionary.Intern, so comparing two nodes' names reduces
	// to comparing *dict.Handle pointers.
	Name      *dict.Handle
	Status    Status
	Config    bool
	Mandatory bool

	Parent     *Node
	Next       *Node
	Prev       *Node
	FirstChild *Node

	// Type is populated for Leaf and LeafList nodes only.
	Type *typecompile.CompiledType

	// Key holds a List node's key leaf names, interned and in declared
	// order.
	Key array.Array[*dict.Handle]

	// Grouping holds a Uses node's referenced grouping name, interned.
	// The grouping's children are never spliced in here; see
	// ParsedGrouping.
	Grouping *dict.Handle

	// When is this node's own "when" condition, nil if it declares none.
	When *xpathadapter.Expr
	// Must holds every "must" constraint declared directly on this node.
	Must []*xpathadapter.Expr
}

// AppendChild links child as the new last child of parent, maintaining
// the circular-prev/null-next sibling invariant.
func AppendChild(parent, child *Node) {
	child.Parent = parent
	first := parent.FirstChild
	if first == nil {
		child.Prev = child
		parent.FirstChild = child
		return
	}
	last := first.Prev
	last.Next = child
	child.Prev = last
	first.Prev = child
}

// Siblings returns node's full sibling list in order, starting from the
// first sibling, by walking Prev back to the wrap point.
func Siblings(node *Node) []*Node {
	if node == nil {
		return nil
	}
	first := node
	for first.Prev.Next != nil {
		first = first.Prev
	}
	var out []*Node
	for n := first; n != nil; n = n.Next {
		out = append(out, n)
	}
	return out
}
