package style_test

import (
	"testing"

	"tagmark/internal/lattice"
	"tagmark/internal/style"
)

func TestTagHighlighterFallback(t *testing.T) {
	// Property 9: if a theme styles only tag A and a node carries tag
	// B where A is in B.set, the node is styled as A.
	reg := &lattice.Registry{}
	a, _ := reg.Define("a", nil)
	b, _ := reg.Define("b", a)

	h := style.TagHighlighter([]style.Pair{{Tag: a, Class: "A"}}, style.Options{})

	if got := h.Style([]*lattice.Tag{b}); got != "A" {
		t.Fatalf("style(b) = %q, want %q", got, "A")
	}
}

func TestTagHighlighterModifierPrecedence(t *testing.T) {
	// S5: definition(variableName) -> "VD" (not "V"); variableName -> "V".
	reg := &lattice.Registry{}
	variableName, _ := reg.Define("variableName", nil)
	definition := reg.DefineModifier("definition")
	defVar := definition.Apply(variableName)

	h := style.TagHighlighter([]style.Pair{
		{Tag: defVar, Class: "VD"},
		{Tag: variableName, Class: "V"},
	}, style.Options{})

	if got := h.Style([]*lattice.Tag{defVar}); got != "VD" {
		t.Fatalf("style(definition(variableName)) = %q, want VD", got)
	}
	if got := h.Style([]*lattice.Tag{variableName}); got != "V" {
		t.Fatalf("style(variableName) = %q, want V", got)
	}
}

func TestComposeScopeIsolation(t *testing.T) {
	reg := &lattice.Registry{}
	a, _ := reg.Define("a", nil)

	scoped := style.TagHighlighter([]style.Pair{{Tag: a, Class: "S"}}, style.Options{})
	scoped.Scope = func(top string) bool { return top == "Only" }

	if got := style.Compose([]*style.Highlighter{scoped}, "Other", []*lattice.Tag{a}); got != "" {
		t.Fatalf("scoped highlighter fired outside scope: %q", got)
	}
	if got := style.Compose([]*style.Highlighter{scoped}, "Only", []*lattice.Tag{a}); got != "S" {
		t.Fatalf("scoped highlighter did not fire in scope: %q", got)
	}
}

func TestComposeMultipleHighlighters(t *testing.T) {
	reg := &lattice.Registry{}
	a, _ := reg.Define("a", nil)

	h1 := style.TagHighlighter([]style.Pair{{Tag: a, Class: "one"}}, style.Options{})
	h2 := style.TagHighlighter([]style.Pair{{Tag: a, Class: "two"}}, style.Options{})

	got := style.Compose([]*style.Highlighter{h1, h2}, "Any", []*lattice.Tag{a})
	if got != "one two" {
		t.Fatalf("compose = %q, want %q", got, "one two")
	}
}
