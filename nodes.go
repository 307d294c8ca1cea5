package calctree

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// nodeID addresses a node in a tree's arena. The zero nodeID is no node;
// otherwise the node is at nodes[id-1].
type nodeID uint32

const noNode nodeID = 0

// SafeValue implements redact.SafeValue.
func (nodeID) SafeValue() {}

// node is a cell of the arena. Children are owned by their parent; the parent
// link is only used to move the cursor up.
type node struct {
	val Value

	parent nodeID
	left   nodeID
	right  nodeID
}

// dir names a link from a node.
type dir int8

const (
	dirLeft dir = iota
	dirRight
	dirUp
)

func (d dir) String() string {
	switch d {
	case dirLeft:
		return "left"
	case dirRight:
		return "right"
	case dirUp:
		return "up"
	default:
		panic("calctree: invalid direction")
	}
}

// SafeValue implements redact.SafeValue.
func (dir) SafeValue() {}

// link returns the node in direction d.
func (n *node) link(d dir) nodeID {
	switch d {
	case dirLeft:
		return n.left
	case dirRight:
		return n.right
	default:
		return n.parent
	}
}

// setChild links id as the child of n on side d.
func (n *node) setChild(d dir, id nodeID) {
	switch d {
	case dirLeft:
		n.left = id
	case dirRight:
		n.right = id
	default:
		panic("calctree: setChild up")
	}
}

// node returns the arena cell for id. The pointer is invalidated by alloc.
func (t *Tree) node(id nodeID) *node {
	return &t.nodes[id-1]
}

// alloc adds a node holding v with the given parent and returns its id.
func (t *Tree) alloc(v Value, parent nodeID) nodeID {
	t.nodes = append(t.nodes, node{val: v, parent: parent})
	return nodeID(len(t.nodes))
}

// must panics if a cursor operation that cannot fail did.
func must(err error) {
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "calctree: cursor operation failed"))
	}
}

// String renders the tree in infix notation, with alternating round and square
// brackets grouping each term. Missing operands are written as _.
func (t *Tree) String() string {
	if t.head == noNode {
		return ""
	}
	var b strings.Builder
	t.fmt(&b, t.head, false)
	return b.String()
}

func (t *Tree) fmt(b *strings.Builder, id nodeID, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	n := t.node(id)
	if n.val.kind != KindOperator {
		b.WriteString(n.val.String())
		return
	}
	t.fmtoperand(b, n.left, !square)
	b.WriteByte(' ')
	b.WriteString(n.val.op.String())
	b.WriteByte(' ')
	t.fmtoperand(b, n.right, !square)
}

func (t *Tree) fmtoperand(b *strings.Builder, id nodeID, square bool) {
	if id == noNode {
		b.WriteByte('_')
		return
	}
	t.fmt(b, id, square)
}
