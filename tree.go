package calctree

import "github.com/cockroachdb/errors"

// Tree is a binary tree of Values navigated through a cursor. The zero Tree is
// empty and ready to use. The tree owns every node reachable from its root;
// Reset releases them all.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	// head is the root node.
	head nodeID
	// cur is the cursor, the target of reads, writes and navigation.
	cur nodeID
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return new(Tree)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Empty returns whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return t.head == noNode
}

// Reset releases every node and leaves the tree empty.
func (t *Tree) Reset() {
	t.nodes = nil
	t.head, t.cur = noNode, noNode
}

// AtRoot returns whether the cursor is at the root. It is false for an empty
// tree.
func (t *Tree) AtRoot() bool {
	return t.cur != noNode && t.cur == t.head
}

// SetCurrent sets the value at the cursor. On an empty tree, it creates the
// root and places the cursor there.
func (t *Tree) SetCurrent(v Value) {
	if t.cur == noNode {
		t.cur = t.alloc(v, noNode)
		if t.head == noNode {
			t.head = t.cur
		}
		return
	}
	t.node(t.cur).val = v
}

// SetChildLeft sets the value of the cursor's left child, creating the child if
// it does not exist.
func (t *Tree) SetChildLeft(v Value) error {
	return t.setChild(v, dirLeft)
}

// SetChildRight sets the value of the cursor's right child, creating the child
// if it does not exist.
func (t *Tree) SetChildRight(v Value) error {
	return t.setChild(v, dirRight)
}

func (t *Tree) setChild(v Value, d dir) error {
	if t.cur == noNode {
		return errors.Wrapf(ErrOpOnNone, "set %s child", d)
	}
	if c := t.node(t.cur).link(d); c != noNode {
		t.node(c).val = v
		return nil
	}
	id := t.alloc(v, t.cur)
	t.node(t.cur).setChild(d, id)
	return nil
}

// PushLeft inserts a node holding v above the cursor. The new node takes the
// cursor's place under its parent, and the cursor's node becomes the new
// node's left child. The cursor does not move. If the cursor was at the root,
// the new node becomes the root.
func (t *Tree) PushLeft(v Value) error {
	return t.push(v, dirLeft)
}

// PushRight is like PushLeft, but the cursor's node becomes the new node's
// right child.
func (t *Tree) PushRight(v Value) error {
	return t.push(v, dirRight)
}

func (t *Tree) push(v Value, d dir) error {
	if t.cur == noNode {
		return errors.Wrapf(ErrOpOnNone, "push %s", d)
	}
	old := t.cur
	up := t.node(old).parent
	id := t.alloc(v, up)
	t.node(id).setChild(d, old)
	t.node(old).parent = id
	if up == noNode {
		// Only the root has no parent.
		t.head = id
		return nil
	}
	p := t.node(up)
	if p.left == old {
		p.left = id
	} else {
		p.right = id
	}
	return nil
}

// GoLeft moves the cursor to its left child.
func (t *Tree) GoLeft() error {
	return t.move(dirLeft)
}

// GoRight moves the cursor to its right child.
func (t *Tree) GoRight() error {
	return t.move(dirRight)
}

// GoUp moves the cursor to its parent.
func (t *Tree) GoUp() error {
	return t.move(dirUp)
}

func (t *Tree) move(d dir) error {
	if t.cur == noNode {
		return errors.Wrapf(ErrOpOnNone, "go %s", d)
	}
	next := t.node(t.cur).link(d)
	if next == noNode {
		return errors.Wrapf(ErrDeadEnd, "go %s from node %d", d, t.cur)
	}
	t.cur = next
	return nil
}

// SelectRoot moves the cursor to the root. It does nothing on an empty tree.
func (t *Tree) SelectRoot() {
	t.cur = t.head
}

// Current returns the value at the cursor. The result is the zero Value if the
// node is an empty slot.
func (t *Tree) Current() (Value, error) {
	if t.cur == noNode {
		return Value{}, errors.Wrap(ErrOpOnNone, "current")
	}
	return t.node(t.cur).val, nil
}

// Left returns the value of the cursor's left child.
func (t *Tree) Left() (Value, error) {
	return t.get(dirLeft)
}

// Right returns the value of the cursor's right child.
func (t *Tree) Right() (Value, error) {
	return t.get(dirRight)
}

func (t *Tree) get(d dir) (Value, error) {
	if t.cur == noNode {
		return Value{}, errors.Wrapf(ErrOpOnNone, "get %s", d)
	}
	c := t.node(t.cur).link(d)
	if c == noNode {
		return Value{}, errors.Wrapf(ErrOpOnNone, "get %s of node %d", d, t.cur)
	}
	return t.node(c).val, nil
}

// Validate checks the tree's structure: every child links back to its parent,
// every node is reachable from the root exactly once, and the cursor is on a
// reachable node. The result is an assertion failure describing the first
// violation found.
func (t *Tree) Validate() error {
	if t.head == noNode {
		if len(t.nodes) != 0 || t.cur != noNode {
			return errors.AssertionFailedf("calctree: empty tree with %d nodes, cursor %d", len(t.nodes), t.cur)
		}
		return nil
	}
	if p := t.node(t.head).parent; p != noNode {
		return errors.AssertionFailedf("calctree: root %d has parent %d", t.head, p)
	}
	seen := make([]bool, len(t.nodes))
	stack := []nodeID{t.head}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id-1] {
			return errors.AssertionFailedf("calctree: node %d reachable twice", id)
		}
		seen[id-1] = true
		n := t.node(id)
		for _, c := range [...]nodeID{n.left, n.right} {
			if c == noNode {
				continue
			}
			if int(c) > len(t.nodes) {
				return errors.AssertionFailedf("calctree: node %d links to missing node %d", id, c)
			}
			if p := t.node(c).parent; p != id {
				return errors.AssertionFailedf("calctree: node %d is a child of %d but links up to %d", c, id, p)
			}
			stack = append(stack, c)
		}
	}
	for i, ok := range seen {
		if !ok {
			return errors.AssertionFailedf("calctree: node %d is unreachable", i+1)
		}
	}
	if t.cur == noNode || !seen[t.cur-1] {
		return errors.AssertionFailedf("calctree: cursor %d is not in the tree", t.cur)
	}
	return nil
}

// Check returns an error wrapping ErrBadTree if the tree is not well-formed:
// every operator must have two operands, every leaf must be a number, and
// every node must hold a value.
func (t *Tree) Check() error {
	if t.head == noNode {
		return errors.Wrap(ErrBadTree, "empty tree")
	}
	stack := []nodeID{t.head}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v, err := t.value(id)
		if err != nil {
			return err
		}
		n := t.node(id)
		switch v.kind {
		case KindNumber:
			if n.left != noNode || n.right != noNode {
				return errors.Wrapf(ErrBadTree, "number %v at node %d has children", v, id)
			}
		case KindOperator:
			if n.left == noNode || n.right == noNode {
				return errors.Wrapf(ErrBadTree, "operator %v at node %d is missing an operand", v, id)
			}
			stack = append(stack, n.right, n.left)
		}
	}
	return nil
}

// value returns the value at id, or an error if it is empty or an invalid
// operator.
func (t *Tree) value(id nodeID) (Value, error) {
	v := t.node(id).val
	switch v.kind {
	case KindNumber:
		return v, nil
	case KindOperator:
		if !v.op.Valid() {
			return Value{}, errors.Wrapf(ErrBadTree, "node %d holds invalid operator %d", id, int(v.op))
		}
		return v, nil
	default:
		return Value{}, errors.Wrapf(ErrBadTree, "node %d has no value", id)
	}
}
