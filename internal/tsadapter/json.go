package tsadapter

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"

	"tagmark/internal/lattice"
	"tagmark/internal/rule"
	"tagmark/internal/tags"
)

// JSONGrammar is the compiled tagmark grammar for JSON. classify.go's
// one JSON-specific rule -- a string whose parent or grandparent is a
// "pair" gets TokenType instead of TokenString -- doesn't distinguish
// a pair's key from a same-typed string value either; this table
// keeps that same imprecision rather than inventing sibling-position
// matching the selector language doesn't have (spec.md §6 selectors
// only ever look at ancestor type names).
var JSONGrammar = buildJSONGrammar()

func buildJSONGrammar() *Grammar {
	specs := []rule.Spec{
		{Selector: "comment", Tags: []*lattice.Tag{tags.LineComment}},

		// Inherit mode (/...) so the quotes and string_content child share
		// the string's class and the whole literal forms one span.
		{Selector: "pair/string/...", Tags: []*lattice.Tag{tags.PropertyName}},
		{Selector: "string/...", Tags: []*lattice.Tag{tags.String}},
		{Selector: "escape_sequence", Tags: []*lattice.Tag{tags.Escape}},

		{Selector: "number", Tags: []*lattice.Tag{tags.Number}},
		{Selector: "true", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "false", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "null", Tags: []*lattice.Tag{tags.Null}},

		{Selector: "{", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: "}", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: "[", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: "]", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: ":", Tags: []*lattice.Tag{tags.Separator}},
		{Selector: ",", Tags: []*lattice.Tag{tags.Separator}},

		{Selector: "ERROR", Tags: []*lattice.Tag{tags.Invalid}},
	}

	c, err := rule.Compile(specs)
	if err != nil {
		panic(err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	return &Grammar{
		Language: sitter.NewLanguage(tsjson.Language()),
		Prop:     prop,
	}
}
