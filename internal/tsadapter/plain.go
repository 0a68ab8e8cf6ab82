package tsadapter

import "tagmark/internal/tree"

// Plain wraps unstructured text as a one-node tree.Tree: a single Top
// "Document" node with no children and no rules, so a walk over it
// always yields the unstyled-gap behavior emit.HighlightCode already
// covers. Used for lang.Plain and any extension internal/lang maps to
// it for lack of a wired grammar.
func Plain(length int) tree.Tree { return plainTree{length: length} }

type plainTree struct{ length int }

func (t plainTree) Length() int         { return t.length }
func (t plainTree) Cursor() tree.Cursor { return plainCursor{length: t.length} }

type plainCursor struct{ length int }

func (c plainCursor) Type() tree.NodeType         { return nodeType{name: "Document", top: true} }
func (c plainCursor) From() int                   { return 0 }
func (c plainCursor) To() int                     { return c.length }
func (c plainCursor) FirstChild() bool            { return false }
func (c plainCursor) NextSibling() bool           { return false }
func (c plainCursor) Parent() bool                { return false }
func (c plainCursor) MatchContext(_ []string) bool { return true }
func (c plainCursor) Mount() *tree.Mount          { return nil }
