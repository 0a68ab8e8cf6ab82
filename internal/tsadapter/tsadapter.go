// Package tsadapter implements internal/tree.Tree and Cursor over
// github.com/smacker/go-tree-sitter, and defines the selector specs
// (internal/rule.Spec) for the grammars it wires: Go, JSON, and Zig.
//
// Grounded on the teacher's internal/highlighter package: the same
// sitter.NewParser/parser.ParseCtx call shape as highlighter.go, and
// the same leaf-classification questions classify.go answered with Go
// string matching, now answered declaratively with selector strings
// compiled once per grammar by internal/rule.
package tsadapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"tagmark/internal/lattice"
	"tagmark/internal/rule"
	"tagmark/internal/tags"
	"tagmark/internal/tree"
)

// Definition marks a name tag as a binding occurrence, shared by every
// grammar's selector table.
func Definition(t *lattice.Tag) *lattice.Tag { return tags.Definition.Apply(t) }

// Mutable marks a name tag as declared in a way that permits later
// reassignment. Composes with Definition on the same tag: a var's
// binding occurrence is both.
func Mutable(t *lattice.Tag) *lattice.Tag { return tags.Mutable.Apply(t) }

// Grammar bundles a tree-sitter language with the compiled rule table
// that classifies its node types.
type Grammar struct {
	Language *sitter.Language
	Prop     *rule.Prop
}

// Parse parses source with g's language and returns a tree.Tree backed
// by the resulting tree-sitter parse tree.
func Parse(ctx context.Context, g *Grammar, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(g.Language)

	t, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tsadapter: parse: %w", err)
	}
	if t == nil || t.RootNode() == nil {
		return nil, fmt.Errorf("tsadapter: parse: empty tree")
	}
	return &Tree{sitterTree: t, source: source}, nil
}

// Tree wraps a parsed *sitter.Tree as a tree.Tree. Callers own its
// lifetime and should call Close when done with it.
type Tree struct {
	sitterTree *sitter.Tree
	source     []byte
}

func (t *Tree) Length() int { return len(t.source) }

func (t *Tree) Cursor() tree.Cursor {
	return &Cursor{stack: []*sitter.Node{t.sitterTree.RootNode()}}
}

// Close releases the underlying tree-sitter parse tree.
func (t *Tree) Close() {
	if t.sitterTree != nil {
		t.sitterTree.Close()
	}
}

type nodeType struct {
	name string
	top  bool
}

func (n nodeType) Name() string { return n.name }
func (n nodeType) IsTop() bool  { return n.top }

// Cursor is a stateful walker over a *sitter.Node tree, the same
// stack-of-nodes-plus-child-index shape as internal/testtree.Cursor.
type Cursor struct {
	stack []*sitter.Node
	idx   []int
}

func (c *Cursor) cur() *sitter.Node { return c.stack[len(c.stack)-1] }

func (c *Cursor) Type() tree.NodeType {
	n := c.cur()
	return nodeType{name: n.Type(), top: len(c.stack) == 1}
}

func (c *Cursor) From() int { return int(c.cur().StartByte()) }
func (c *Cursor) To() int   { return int(c.cur().EndByte()) }

func (c *Cursor) FirstChild() bool {
	n := c.cur()
	if int(n.ChildCount()) == 0 {
		return false
	}
	c.stack = append(c.stack, n.Child(0))
	c.idx = append(c.idx, 0)
	return true
}

func (c *Cursor) NextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	i := c.idx[len(c.idx)-1]
	if i+1 >= int(parent.ChildCount()) {
		return false
	}
	c.idx[len(c.idx)-1] = i + 1
	c.stack[len(c.stack)-1] = parent.Child(i + 1)
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
		if want != "" && anc.Type() != want {
			return false
		}
	}
	return true
}

// Mount always returns nil: none of the wired grammars embed another
// language's grammar within their own parse tree.
func (c *Cursor) Mount() *tree.Mount { return nil }
