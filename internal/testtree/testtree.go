// Package testtree is a minimal, hand-built implementation of
// internal/tree's interfaces used by unit tests across the core
// packages, so those tests don't need a real tree-sitter parse.
package testtree

import "tagmark/internal/tree"

// Node is a fake syntax-tree node.
type Node struct {
	TypeName string
	Top      bool
	From, To int
	Children []*Node
	MountVal *tree.Mount
}

type fakeType struct {
	name string
	top  bool
}

func (f fakeType) Name() string { return f.name }
func (f fakeType) IsTop() bool  { return f.top }

// Tree wraps a root Node as a tree.Tree.
type Tree struct {
	Root *Node
}

func (t *Tree) Length() int         { return t.Root.To }
func (t *Tree) Cursor() tree.Cursor { return NewCursor(t.Root) }

// Cursor is a stateful walker over a Node tree.
type Cursor struct {
	stack []*Node
	idx   []int
}

// NewCursor returns a cursor positioned at root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{stack: []*Node{root}}
}

func (c *Cursor) cur() *Node { return c.stack[len(c.stack)-1] }

func (c *Cursor) Type() tree.NodeType {
	n := c.cur()
	return fakeType{name: n.TypeName, top: n.Top}
}

func (c *Cursor) From() int { return c.cur().From }
func (c *Cursor) To() int   { return c.cur().To }

func (c *Cursor) FirstChild() bool {
	n := c.cur()
	if len(n.Children) == 0 {
		return false
	}
	c.stack = append(c.stack, n.Children[0])
	c.idx = append(c.idx, 0)
	return true
}

func (c *Cursor) NextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	i := c.idx[len(c.idx)-1]
	if i+1 >= len(parent.Children) {
		return false
	}
	c.idx[len(c.idx)-1] = i + 1
	c.stack[len(c.stack)-1] = parent.Children[i+1]
	return true
}

func (c *Cursor) Parent() bool {
	if len(c.stack) < 2 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.idx = c.idx[:len(c.idx)-1]
	return true
}

// MatchContext checks path (innermost first, "" = wildcard) against
// the ancestor chain above the current node.
func (c *Cursor) MatchContext(path []string) bool {
	depth := len(c.stack) - 1
	if len(path) > depth {
		return false
	}
	for i, want := range path {
		anc := c.stack[len(c.stack)-2-i]
		if want != "" && anc.TypeName != want {
			return false
		}
	}
	return true
}

func (c *Cursor) Mount() *tree.Mount { return c.cur().MountVal }
