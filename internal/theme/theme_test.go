package theme_test

import (
	"strings"
	"testing"

	"tagmark/internal/lattice"
	"tagmark/internal/tags"
	"tagmark/internal/theme"
)

func TestFromChromaStyleProducesNamespacedClasses(t *testing.T) {
	hl, palette, err := theme.FromChromaStyle("nord")
	if err != nil {
		t.Fatalf("FromChromaStyle: %v", err)
	}

	got := hl.Style([]*lattice.Tag{tags.Keyword})
	if !strings.HasPrefix(got, theme.ClassPrefix) {
		t.Fatalf("Style(keyword) = %q, want tmk--prefixed class", got)
	}
	if _, ok := palette[got]; !ok {
		t.Fatalf("palette has no colour for class %q (palette=%v)", got, palette)
	}
}

func TestFromChromaStyleSubtagFallback(t *testing.T) {
	// tags.Integer has no row of its own in the mapping table; it
	// should resolve through its specificity chain to tags.Number's
	// class, same as property 9 (spec.md's sub-tag fallback).
	hl, _, err := theme.FromChromaStyle("nord")
	if err != nil {
		t.Fatalf("FromChromaStyle: %v", err)
	}

	got := hl.Style([]*lattice.Tag{tags.Integer})
	want := hl.Style([]*lattice.Tag{tags.Number})
	if got != want {
		t.Fatalf("Style(integer) = %q, want fallback to Style(number) = %q", got, want)
	}
}

func TestFromChromaStyleUnknownThemeErrors(t *testing.T) {
	if _, _, err := theme.FromChromaStyle("not-a-real-theme"); err == nil {
		t.Fatalf("expected an error for an unknown theme name")
	}
}

func TestFromChromaStyleNormalizesAliases(t *testing.T) {
	if _, _, err := theme.FromChromaStyle("solarized"); err != nil {
		t.Fatalf("FromChromaStyle(solarized): %v", err)
	}
	if _, _, err := theme.FromChromaStyle("one-dark"); err != nil {
		t.Fatalf("FromChromaStyle(one-dark): %v", err)
	}
}
