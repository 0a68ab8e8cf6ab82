// Package tree declares the external syntax-tree collaborator
// interfaces the highlighting core consumes but never implements:
// nodes, cursors, and mounted/overlay sub-trees. Concrete
// implementations live outside this module's core, e.g.
// internal/tsadapter.
package tree

// NodeType identifies a grammar node kind.
type NodeType interface {
	// Name is the debug/selector-matching name of the node type.
	Name() string
	// IsTop reports whether this type marks the root of a
	// language-scoped subtree (relevant to Highlighter.Scope).
	IsTop() bool
}

// ContextMatcher is satisfied by anything that can test an ancestor
// path against its current position: path[i] is the name expected at
// i+1 levels up (innermost first), with "" matching any name.
type ContextMatcher interface {
	MatchContext(path []string) bool
}

// OverlayRange is one relative byte range of an overlay, relative to
// the mount's host node start.
type OverlayRange struct {
	From, To int
}

// Mount describes a sub-tree attached to a host node: either a full
// replacement (Overlay is empty) or a set of overlay ranges layered
// on top of the host's own children.
type Mount struct {
	Tree    Tree
	Overlay []OverlayRange
}

// Cursor is a stateful walker over a Tree, positioned at one node.
type Cursor interface {
	ContextMatcher

	Type() NodeType
	From() int
	To() int

	FirstChild() bool
	NextSibling() bool
	Parent() bool

	// Mount returns the mount attached at the current node, or nil.
	Mount() *Mount
}

// Tree is a parsed syntax tree.
type Tree interface {
	Length() int
	Cursor() Cursor
}
