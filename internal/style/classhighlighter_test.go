package style_test

import (
	"testing"

	"tagmark/internal/lattice"
	"tagmark/internal/style"
)

func TestClassHighlighterPrefixesEachToken(t *testing.T) {
	reg := &lattice.Registry{}
	keyword, _ := reg.Define("keyword", nil)

	h := style.ClassHighlighter([]style.Pair{{Tag: keyword, Class: "keyword"}}, "tmk-")

	if got := h.Style([]*lattice.Tag{keyword}); got != "tmk-keyword" {
		t.Fatalf("Style(keyword) = %q, want %q", got, "tmk-keyword")
	}
}

func TestClassHighlighterCompositeModifierPrefixesBothTokens(t *testing.T) {
	// spec.md §6 Class Output Shape: a modifier-qualified tag renders
	// as two prefixed classes, e.g. "tmk-name tmk-definition".
	reg := &lattice.Registry{}
	name, _ := reg.Define("name", nil)
	definition := reg.DefineModifier("definition")
	defName := definition.Apply(name)

	h := style.ClassHighlighter([]style.Pair{
		{Tag: defName, Class: "name definition"},
		{Tag: name, Class: "name"},
	}, "tmk-")

	if got := h.Style([]*lattice.Tag{defName}); got != "tmk-name tmk-definition" {
		t.Fatalf("Style(definition(name)) = %q, want %q", got, "tmk-name tmk-definition")
	}
	if got := h.Style([]*lattice.Tag{name}); got != "tmk-name" {
		t.Fatalf("Style(name) = %q, want %q", got, "tmk-name")
	}
}
