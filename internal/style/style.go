// Package style maps tag sequences to stylesheet class strings, with
// sub-tag fallback via a tag's specificity chain, and composes
// multiple highlighters with optional scope filtering.
package style

import (
	"strings"

	"tagmark/internal/lattice"
)

// Highlighter pairs a style function with an optional scope predicate
// that restricts it to subtrees rooted at a matching top node.
type Highlighter struct {
	Style func(tags []*lattice.Tag) string
	Scope func(topNodeName string) bool
}

// Eligible reports whether h applies to a subtree rooted at a node
// named topNodeName; a nil Scope means always eligible.
func (h *Highlighter) Eligible(topNodeName string) bool {
	if h.Scope == nil {
		return true
	}
	return h.Scope(topNodeName)
}

// Pair maps one tag to a class fragment; used by TagHighlighter and
// ClassHighlighter.
type Pair struct {
	Tag   *lattice.Tag
	Class string
}

// Options configures TagHighlighter.
type Options struct {
	// All, if non-empty, is unconditionally prefixed onto every
	// non-nothing style result (and returned alone if nothing else
	// matched).
	All string
}

// TagHighlighter builds a Highlighter whose style function follows
// spec.md §4.E: for each input tag, scan its specificity chain in
// order and append the first mapped class found.
func TagHighlighter(pairs []Pair, opts Options) *Highlighter {
	sub := make(map[lattice.TagID]string, len(pairs))
	for _, p := range pairs {
		sub[p.Tag.ID()] = p.Class
	}

	return &Highlighter{
		Style: func(tags []*lattice.Tag) string {
			var classes []string
			if opts.All != "" {
				classes = append(classes, opts.All)
			}
			for _, t := range tags {
				for _, anc := range t.Set {
					if cls, ok := sub[anc.ID()]; ok {
						classes = append(classes, cls)
						break
					}
				}
			}
			return strings.Join(classes, " ")
		},
	}
}

// Compose concatenates the non-empty results of every eligible
// highlighter, space-separated, in highlighter order.
func Compose(highlighters []*Highlighter, topNodeName string, tags []*lattice.Tag) string {
	var parts []string
	for _, h := range highlighters {
		if h == nil || !h.Eligible(topNodeName) {
			continue
		}
		if cls := h.Style(tags); cls != "" {
			parts = append(parts, cls)
		}
	}
	return strings.Join(parts, " ")
}

// Filter returns the subset of highlighters eligible for topNodeName,
// used by the walker when entering a new language-scoped top node.
func Filter(highlighters []*Highlighter, topNodeName string) []*Highlighter {
	out := make([]*Highlighter, 0, len(highlighters))
	for _, h := range highlighters {
		if h != nil && h.Eligible(topNodeName) {
			out = append(out, h)
		}
	}
	return out
}
