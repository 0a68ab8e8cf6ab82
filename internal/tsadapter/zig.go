package tsadapter

import (
	sitter "github.com/smacker/go-tree-sitter"
	tszig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"

	"tagmark/internal/lattice"
	"tagmark/internal/rule"
	"tagmark/internal/tags"
)

// ZigGrammar is the compiled tagmark grammar for Zig -- the teacher's
// go.mod already carried this dependency without a single import
// anywhere in the tree (see DESIGN.md); wiring it as a third grammar
// exercises it instead of dropping it.
var ZigGrammar = buildZigGrammar()

func buildZigGrammar() *Grammar {
	specs := []rule.Spec{
		{Selector: "line_comment", Tags: []*lattice.Tag{tags.LineComment}},
		{Selector: "container_doc_comment", Tags: []*lattice.Tag{tags.DocComment}},
		{Selector: "doc_comment", Tags: []*lattice.Tag{tags.DocComment}},

		// Inherit mode (/...) so the quotes and content children share the
		// string's class and the whole literal forms one span.
		{Selector: "string/...", Tags: []*lattice.Tag{tags.String}},
		{Selector: "multiline_string/...", Tags: []*lattice.Tag{tags.String}},
		{Selector: "char_literal", Tags: []*lattice.Tag{tags.Character}},
		{Selector: "escape_sequence", Tags: []*lattice.Tag{tags.Escape}},

		{Selector: "integer", Tags: []*lattice.Tag{tags.Integer}},
		{Selector: "float", Tags: []*lattice.Tag{tags.Float}},
		{Selector: "true", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "false", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "null", Tags: []*lattice.Tag{tags.Null}},
		{Selector: "undefined", Tags: []*lattice.Tag{tags.Null}},

		{Selector: "builtin_identifier", Tags: []*lattice.Tag{tags.Macro}},
		{Selector: "call_expression/identifier", Tags: []*lattice.Tag{tags.FunctionName}},
		{Selector: "fn_proto/identifier", Tags: []*lattice.Tag{Definition(tags.FunctionName)}},
		{Selector: "identifier", Tags: []*lattice.Tag{tags.VariableName}},

		{Selector: "const", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "var", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "pub", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "fn", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "return", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "if", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "else", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "while", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "for", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "struct", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "enum", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "union", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "error", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "try", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "catch", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "orelse", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: "and", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: "or", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: "comptime", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "defer", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "errdefer", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "break", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "continue", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "switch", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "test", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "unreachable", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "extern", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "export", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "inline", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "packed", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "async", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "await", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "usingnamespace", Tags: []*lattice.Tag{tags.Keyword}},

		// "*", "/", and "!=" must be JSON-quoted: an unquoted piece may
		// not contain "/" or "!", and a bare "*" parses as the empty
		// wildcard target rather than the literal token (spec.md §6).
		{Selector: "+", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "-", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "\"*\"", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "\"/\"", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "==", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "\"!=\"", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "=", Tags: []*lattice.Tag{tags.Operator}},

		{Selector: "(", Tags: []*lattice.Tag{tags.Paren}},
		{Selector: ")", Tags: []*lattice.Tag{tags.Paren}},
		{Selector: "[", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: "]", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: "{", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: "}", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: ",", Tags: []*lattice.Tag{tags.Separator}},
		{Selector: ";", Tags: []*lattice.Tag{tags.Separator}},

		{Selector: "ERROR", Tags: []*lattice.Tag{tags.Invalid}},
	}

	c, err := rule.Compile(specs)
	if err != nil {
		panic(err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	return &Grammar{
		Language: sitter.NewLanguage(tszig.Language()),
		Prop:     prop,
	}
}
