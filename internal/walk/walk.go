// Package walk implements the tree-walking style resolver: cursor
// recursion honoring inheritance, opaque subtrees, and mounted/overlay
// sub-trees, emitting a coalesced left-to-right stream of styled
// ranges.
package walk

import (
	"tagmark/internal/rule"
	"tagmark/internal/style"
	"tagmark/internal/tree"
)

// EmitFunc receives one coalesced styled range, called in strictly
// increasing position order, only for ranges with non-empty classes.
type EmitFunc func(from, to int, classes string)

// HighlightTree walks cur over [from, to), applying prop's compiled
// rules and highlighters, calling emit for each coalesced span.
func HighlightTree(cur tree.Cursor, prop *rule.Prop, highlighters []*style.Highlighter, from, to int, emit EmitFunc) {
	if from >= to {
		return
	}
	b := &builder{at: from, emit: emit}
	walk(cur, prop, highlighters, "", from, to, b)
	b.flush(to)
}

type builder struct {
	at    int
	class string
	emit  EmitFunc
}

func (b *builder) flush(to int) {
	if to > b.at {
		if b.class != "" {
			b.emit(b.at, to, b.class)
		}
		b.at = to
	}
}

func (b *builder) startSpan(pos int, cls string) {
	if cls == b.class {
		return
	}
	b.flush(pos)
	b.class = cls
}

func joinClasses(a, c string) string {
	switch {
	case a == "":
		return c
	case c == "":
		return a
	default:
		return a + " " + c
	}
}

func walk(cur tree.Cursor, prop *rule.Prop, highlighters []*style.Highlighter, inherited string, from, to int, b *builder) {
	typ := cur.Type()
	start, end := cur.From(), cur.To()
	if end <= from || start >= to {
		return
	}

	if typ.IsTop() {
		highlighters = style.Filter(highlighters, typ.Name())
	}

	head := prop.Get(typ.Name())
	matched := rule.Match(head, cur)

	mode := rule.Normal
	var tagCls string
	if matched != nil {
		mode = matched.Mode
		tagCls = style.Compose(highlighters, typ.Name(), matched.Tags)
	}

	cls := joinClasses(inherited, tagCls)
	nextInherited := inherited
	if mode == rule.Inherit && tagCls != "" {
		nextInherited = cls
	}

	b.startSpan(max(from, start), cls)

	if mode == rule.Opaque {
		return
	}

	if mount := cur.Mount(); mount != nil {
		if len(mount.Overlay) > 0 {
			walkOverlay(cur, mount, prop, highlighters, nextInherited, from, to, cls, b)
		} else {
			inner := mount.Tree.Cursor()
			walk(inner, prop, highlighters, "", from, to, b)
			b.startSpan(min(to, end), cls)
		}
		return
	}

	descendChildren(cur, prop, highlighters, nextInherited, from, to, cls, b)
}

// descendChildren visits cur's actual children, re-asserting cls (the
// current node's own class) only across an actual sibling gap, so two
// adjacent children carrying the same resolved class coalesce into one
// emitted span instead of being split at the sibling boundary.
func descendChildren(cur tree.Cursor, prop *rule.Prop, highlighters []*style.Highlighter, inherited string, from, to int, cls string, b *builder) {
	if !cur.FirstChild() {
		return
	}
	defer cur.Parent()

	pos := cur.From()
	for {
		if to <= pos {
			return
		}
		start := cur.From()
		if start > pos {
			b.startSpan(min(to, start), cls)
		}
		walk(cur, prop, highlighters, inherited, max(from, start), min(to, cur.To()), b)
		pos = cur.To()
		if !cur.NextSibling() {
			break
		}
	}
	if pos < to {
		b.startSpan(min(to, pos), cls)
	}
}

// walkOverlay implements spec.md §4.F's mounted-overlay traversal:
// host children fill the gaps between overlay ranges, the mounted
// sub-tree covers the overlay ranges themselves (rebased by the host
// node's start, with its own empty inheritedClass).
func walkOverlay(cur tree.Cursor, mount *tree.Mount, prop *rule.Prop, highlighters []*style.Highlighter, inherited string, from, to int, cls string, b *builder) {
	start := cur.From()
	end := cur.To()
	overlays := mount.Overlay
	pos := start

	for i := 0; ; i++ {
		hasNext := i < len(overlays)
		var nextFrom, nextTo int
		if hasNext {
			nextFrom = overlays[i].From + start
			nextTo = overlays[i].To + start
		} else {
			nextFrom, nextTo = end, end
		}

		gapFrom, gapTo := max(from, pos), min(to, nextFrom)
		if gapFrom < gapTo {
			descendChildren(cur, prop, highlighters, inherited, gapFrom, gapTo, cls, b)
		}

		if hasNext && nextFrom <= to {
			innerFrom, innerTo := max(from, nextFrom), min(to, nextTo)
			if innerFrom < innerTo {
				walk(mount.Tree.Cursor(), prop, highlighters, "", innerFrom, innerTo, b)
				b.startSpan(min(to, innerTo), cls)
			}
		}

		pos = nextTo
		if !hasNext {
			return
		}
	}
}
