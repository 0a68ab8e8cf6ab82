// Package theme adapts a chroma stylesheet into a tagmark
// style.Highlighter, the same fallback-scan-of-token-types approach
// the teacher's theme.go used to build a fixed ThemePalette, retargeted
// to the open tag vocabulary in internal/tags.
package theme

import (
	"fmt"
	"sort"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"tagmark/internal/lattice"
	"tagmark/internal/style"
	"tagmark/internal/tags"
)

// ClassPrefix namespaces every class FromChromaStyle produces, so
// tagmark's output never collides with a host page's own classes.
const ClassPrefix = "tmk-"

// tagMapping pairs a tag with the class it renders as and the chroma
// token types scanned, in order, to find a colour for it; the first
// type hit wins, exactly as theme.go's pickForeground does per
// ThemePalette field. class deliberately reuses the teacher's flat
// eight-word TokenCategory vocabulary (keyword, type, function,
// string, number, comment, operator, error), plus "name" for
// identifiers, rather than internal/tags' finer sub-tag names, per
// spec's Class Output Shape; several distinct
// tags collapse onto the same class (e.g. Bool and Null both render
// "number", matching classify.go's own literal-lexeme check, which
// never distinguishes them from a numeric literal either).
type tagMapping struct {
	tag   *lattice.Tag
	class string
	types []chroma.TokenType
}

var mappings = []tagMapping{
	{tags.Keyword, "keyword", []chroma.TokenType{chroma.Keyword}},

	{tags.TypeName, "type", []chroma.TokenType{chroma.KeywordType, chroma.NameClass}},
	{tags.FunctionName, "function", []chroma.TokenType{chroma.NameFunction, chroma.Name}},
	{tags.Macro, "function", []chroma.TokenType{chroma.CommentPreproc, chroma.NameFunction}},
	{tags.Namespace, "name", []chroma.TokenType{chroma.NameNamespace, chroma.NameClass}},
	{tags.PropertyName, "name", []chroma.TokenType{chroma.NameAttribute, chroma.NameVariable}},
	{tags.VariableName, "name", []chroma.TokenType{chroma.NameVariable, chroma.Name}},
	// Name is the root of the above and never reached directly by a
	// grammar's selector table, but a future grammar may tag a bare
	// name without picking a sub-tag; give it the same fallback.
	{tags.Name, "name", []chroma.TokenType{chroma.Name}},

	{tags.String, "string", []chroma.TokenType{chroma.LiteralString}},
	{tags.Character, "string", []chroma.TokenType{chroma.LiteralStringChar, chroma.LiteralString}},
	{tags.Regexp, "string", []chroma.TokenType{chroma.LiteralStringRegex, chroma.LiteralString}},
	{tags.Number, "number", []chroma.TokenType{chroma.LiteralNumber}},
	{tags.Bool, "number", []chroma.TokenType{chroma.KeywordConstant, chroma.LiteralNumber}},
	{tags.Null, "number", []chroma.TokenType{chroma.KeywordConstant, chroma.LiteralNumber}},
	// Literal is String's and Number's common root; classify.go treats
	// an unrecognized literal lexeme as numeric, so that's the
	// fallback here too. Escape is deliberately left unmapped:
	// classify.go never classifies an escape_sequence node at all, so
	// it renders in the surrounding string's plain foreground.
	{tags.Literal, "number", []chroma.TokenType{chroma.LiteralNumber}},

	{tags.LineComment, "comment", []chroma.TokenType{chroma.Comment}},
	{tags.BlockComment, "comment", []chroma.TokenType{chroma.Comment}},
	{tags.DocComment, "comment", []chroma.TokenType{chroma.CommentSpecial, chroma.Comment}},
	{tags.Comment, "comment", []chroma.TokenType{chroma.Comment}},

	{tags.CompareOperator, "operator", []chroma.TokenType{chroma.Operator}},
	{tags.ArithmeticOperator, "operator", []chroma.TokenType{chroma.Operator}},
	{tags.LogicOperator, "operator", []chroma.TokenType{chroma.OperatorWord, chroma.Operator}},
	{tags.BitwiseOperator, "operator", []chroma.TokenType{chroma.Operator}},
	{tags.Operator, "operator", []chroma.TokenType{chroma.Operator}},
	// classify.go's operatorSet also covers punctuation runes, so
	// brackets and separators fall back to the same class here.
	{tags.Bracket, "operator", []chroma.TokenType{chroma.Punctuation}},
	{tags.Punctuation, "operator", []chroma.TokenType{chroma.Punctuation}},

	{tags.Invalid, "error", []chroma.TokenType{chroma.Error}},

	// Modifier-qualified composites (spec's Class Output Shape):
	// definition sites render with an extra "definition" class beside
	// the name's own, and a var/:=-declared name adds "mutable" too.
	{tags.Definition.Apply(tags.VariableName), "name definition", []chroma.TokenType{chroma.NameVariable, chroma.Name}},
	{tags.Definition.Apply(tags.FunctionName), "function definition", []chroma.TokenType{chroma.NameFunction, chroma.Name}},
	{tags.Mutable.Apply(tags.Definition.Apply(tags.VariableName)), "name definition mutable", []chroma.TokenType{chroma.NameVariable, chroma.Name}},
}

// Palette maps a "tmk-"-prefixed class (as produced by the
// style.Highlighter FromChromaStyle also returns) to the hex colour a
// caller should render it in, e.g. via lipgloss.Color.
type Palette map[string]string

// FromChromaStyle looks up a chroma style by name and builds both a
// style.Highlighter over internal/tags's vocabulary (classes named
// "tmk-keyword", "tmk-string", and so on, per spec's Class Output
// Shape) and the Palette resolving each of those classes to a colour,
// so a renderer never has to know chroma or lattice.Tag exists.
func FromChromaStyle(name string) (*style.Highlighter, Palette, error) {
	lookup := normalizeThemeName(name)

	names := styles.Names()
	available := make(map[string]struct{}, len(names))
	for _, n := range names {
		available[n] = struct{}{}
	}
	if _, ok := available[lookup]; !ok {
		sort.Strings(names)
		return nil, nil, fmt.Errorf("theme: unknown theme %q, try one of: %s", name, strings.Join(topThemeHints(names), ", "))
	}

	chromaStyle := styles.Get(lookup)
	if chromaStyle == nil {
		return nil, nil, fmt.Errorf("theme: chroma has no style registered for %q", lookup)
	}

	fallback := pickForeground(chromaStyle, "#D8DEE9", chroma.Text, chroma.Background)

	pairs := make([]style.Pair, 0, len(mappings))
	palette := make(Palette, len(mappings))
	for _, m := range mappings {
		colour := pickForeground(chromaStyle, fallback, m.types...)
		pairs = append(pairs, style.Pair{Tag: m.tag, Class: m.class})
		// A composite class (e.g. "name definition") carries one colour
		// per constituent token; don't let a later composite's colour
		// override a plain class already set by an earlier, more direct
		// mapping (renderClasses only ever needs the first token to
		// resolve, but every token gets an entry regardless).
		for _, tok := range strings.Fields(m.class) {
			key := ClassPrefix + tok
			if _, ok := palette[key]; !ok {
				palette[key] = colour
			}
		}
	}

	return style.ClassHighlighter(pairs, ClassPrefix), palette, nil
}

func normalizeThemeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = "nord"
	}
	switch n {
	case "solarized":
		return "solarized-dark"
	case "one-dark":
		return "onedark"
	default:
		return n
	}
}

func pickForeground(s *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := s.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return fallback
}

func topThemeHints(all []string) []string {
	wanted := []string{"nord", "dracula", "monokai", "github", "github-dark", "solarized-dark", "solarized-light", "gruvbox", "onedark"}
	set := map[string]bool{}
	for _, n := range all {
		set[n] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if set[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		limit := min(8, len(all))
		return all[:limit]
	}
	return out
}
