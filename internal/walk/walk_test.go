package walk_test

import (
	"testing"

	"tagmark/internal/lattice"
	"tagmark/internal/rule"
	"tagmark/internal/style"
	"tagmark/internal/testtree"
	"tagmark/internal/tree"
	"tagmark/internal/walk"
)

type emission struct {
	From, To int
	Classes  string
}

func runWalk(t *testing.T, root *testtree.Node, prop *rule.Prop, hls []*style.Highlighter, from, to int) []emission {
	t.Helper()
	var out []emission
	cur := testtree.NewCursor(root)
	walk.HighlightTree(cur, prop, hls, from, to, func(a, b int, classes string) {
		out = append(out, emission{a, b, classes})
	})
	return out
}

func tag(t *testing.T, reg *lattice.Registry, name string) *lattice.Tag {
	t.Helper()
	tg, err := reg.Define(name, nil)
	if err != nil {
		t.Fatalf("define %q: %v", name, err)
	}
	return tg
}

func hl(pairs ...style.Pair) *style.Highlighter {
	return style.TagHighlighter(pairs, style.Options{})
}

// S1: "String/Escape": escape on String[0..4] -> Escape[1..3]; escape -> "E".
func TestS1EscapeInString(t *testing.T) {
	reg := &lattice.Registry{}
	escape := tag(t, reg, "escape")

	c, err := rule.Compile([]rule.Spec{{Selector: "String/Escape", Tags: []*lattice.Tag{escape}}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	root := &testtree.Node{TypeName: "String", From: 0, To: 4, Children: []*testtree.Node{
		{TypeName: "Escape", From: 1, To: 3},
	}}

	got := runWalk(t, root, prop, []*style.Highlighter{hl(style.Pair{Tag: escape, Class: "E"})}, 0, 4)
	want := []emission{{1, 3, "E"}}
	assertEmissions(t, got, want)
}

// S2: "Italic/...": emphasis on Italic[0..10] -> Word[2..6]; emphasis -> "EM".
func TestS2InheritCoalesces(t *testing.T) {
	reg := &lattice.Registry{}
	emphasis := tag(t, reg, "emphasis")

	c, err := rule.Compile([]rule.Spec{{Selector: "Italic/...", Tags: []*lattice.Tag{emphasis}}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	root := &testtree.Node{TypeName: "Italic", From: 0, To: 10, Children: []*testtree.Node{
		{TypeName: "Word", From: 2, To: 6},
	}}

	got := runWalk(t, root, prop, []*style.Highlighter{hl(style.Pair{Tag: emphasis, Class: "EM"})}, 0, 10)
	want := []emission{{0, 10, "EM"}}
	assertEmissions(t, got, want)
}

// S3: "Attribute!": meta on Attribute[0..8] -> String[2..6]; meta -> "M".
func TestS3OpaqueNoDescent(t *testing.T) {
	reg := &lattice.Registry{}
	meta := tag(t, reg, "meta")
	str := tag(t, reg, "string")

	c, err := rule.Compile([]rule.Spec{
		{Selector: "Attribute!", Tags: []*lattice.Tag{meta}},
		{Selector: "String", Tags: []*lattice.Tag{str}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	root := &testtree.Node{TypeName: "Attribute", From: 0, To: 8, Children: []*testtree.Node{
		{TypeName: "String", From: 2, To: 6},
	}}

	got := runWalk(t, root, prop, []*style.Highlighter{
		hl(style.Pair{Tag: meta, Class: "M"}, style.Pair{Tag: str, Class: "S"}),
	}, 0, 8)
	want := []emission{{0, 8, "M"}}
	assertEmissions(t, got, want)
}

// S4: overlay traversal; inner ranges do not inherit host classes.
func TestS4OverlayMount(t *testing.T) {
	reg := &lattice.Registry{}
	keyword := tag(t, reg, "keyword")
	str := tag(t, reg, "string")

	c, err := rule.Compile([]rule.Spec{
		{Selector: "Block", Tags: []*lattice.Tag{keyword}},
		{Selector: "string_lit", Tags: []*lattice.Tag{str}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	highlighters := []*style.Highlighter{hl(
		style.Pair{Tag: keyword, Class: "K"},
		style.Pair{Tag: str, Class: "S"},
	)}

	innerRoot := &testtree.Node{TypeName: "InlineRoot", From: 0, To: 20, Children: []*testtree.Node{
		{TypeName: "string_lit", From: 6, To: 9},
	}}
	innerTree := &testtree.Tree{Root: innerRoot}

	host := &testtree.Node{
		TypeName: "Block", From: 0, To: 20,
		MountVal: &tree.Mount{
			Tree: innerTree,
			Overlay: []tree.OverlayRange{
				{From: 5, To: 10},
				{From: 12, To: 15},
			},
		},
	}

	got := runWalk(t, host, prop, highlighters, 0, 20)
	want := []emission{
		{0, 5, "K"},
		{6, 9, "S"},
		{10, 12, "K"},
		{15, 20, "K"},
	}
	assertEmissions(t, got, want)
}

func TestWalkMountClearsInheritance(t *testing.T) {
	// Open Question (spec.md §9): inheritance does not cross a
	// non-overlay (full replacement) mount boundary.
	reg := &lattice.Registry{}
	outer := tag(t, reg, "outer")
	plain := tag(t, reg, "plain")

	c, err := rule.Compile([]rule.Spec{
		{Selector: "Doc/...", Tags: []*lattice.Tag{outer}},
		{Selector: "leaf", Tags: []*lattice.Tag{plain}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	highlighters := []*style.Highlighter{hl(
		style.Pair{Tag: outer, Class: "OUT"},
		style.Pair{Tag: plain, Class: "P"},
	)}

	innerRoot := &testtree.Node{TypeName: "leaf", From: 0, To: 5}
	innerTree := &testtree.Tree{Root: innerRoot}

	host := &testtree.Node{
		TypeName: "Doc", From: 0, To: 5,
		MountVal: &tree.Mount{Tree: innerTree},
	}

	got := runWalk(t, host, prop, highlighters, 0, 5)
	// If inheritance crossed the boundary the class would be "OUT P".
	want := []emission{{0, 5, "P"}}
	assertEmissions(t, got, want)
}

func TestCoverageAndCoalescing(t *testing.T) {
	reg := &lattice.Registry{}
	a := tag(t, reg, "a")

	c, err := rule.Compile([]rule.Spec{{Selector: "Leaf", Tags: []*lattice.Tag{a}}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	root := &testtree.Node{TypeName: "Root", From: 0, To: 12, Children: []*testtree.Node{
		{TypeName: "Leaf", From: 0, To: 4},
		{TypeName: "Leaf", From: 4, To: 8},
		{TypeName: "Other", From: 8, To: 12},
	}}

	got := runWalk(t, root, prop, []*style.Highlighter{hl(style.Pair{Tag: a, Class: "A"})}, 0, 12)
	// Property 6: two adjacent identical-class Leaf spans coalesce.
	want := []emission{{0, 8, "A"}}
	assertEmissions(t, got, want)

	// Property 5: coverage subset + strictly increasing + disjoint.
	prevTo := 0
	for _, e := range got {
		if e.From < prevTo {
			t.Fatalf("overlapping emissions: %+v", got)
		}
		if e.From < 0 || e.To > 12 {
			t.Fatalf("emission outside [0,12): %+v", e)
		}
		prevTo = e.To
	}
}

func assertEmissions(t *testing.T, got, want []emission) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("emissions = %+v, want %+v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("emission[%d] = %+v, want %+v (full got=%+v)", i, got[i], want[i], got)
		}
	}
}
