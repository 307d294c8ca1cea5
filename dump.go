package calctree

import (
	"io"
	"strings"
)

// dumpIndent is the margin added for each level of depth in a dump.
const dumpIndent = "   "

// Dump writes the tree sideways to w, one node per line: the right subtree,
// then the node indented by its depth, then the left subtree. Reading the
// output with the head tilted left shows the tree with its root at the top.
// Empty slots are written as None.
func (t *Tree) Dump(w io.Writer) error {
	if t.head == noNode {
		return nil
	}
	return t.dump(w, t.head, 0)
}

// DumpString returns the output of Dump as a string.
func (t *Tree) DumpString() string {
	var b strings.Builder
	t.Dump(&b)
	return b.String()
}

func (t *Tree) dump(w io.Writer, id nodeID, depth int) error {
	n := t.node(id)
	if n.right != noNode {
		if err := t.dump(w, n.right, depth+1); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, strings.Repeat(dumpIndent, depth)+n.val.String()+"\n"); err != nil {
		return err
	}
	if n.left != noNode {
		return t.dump(w, n.left, depth+1)
	}
	return nil
}
