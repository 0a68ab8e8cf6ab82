package tsadapter

import (
	golang "github.com/smacker/go-tree-sitter/golang"

	"tagmark/internal/lattice"
	"tagmark/internal/rule"
	"tagmark/internal/tags"
)

// GoGrammar is the compiled tagmark grammar for Go source, translating
// the same nodeType/parentType questions classify.go's
// isFunctionContext/isTypeContext/keywordSet answered with string
// matching into a declarative selector table.
var GoGrammar = buildGoGrammar()

func buildGoGrammar() *Grammar {
	specs := []rule.Spec{
		{Selector: "comment", Tags: []*lattice.Tag{tags.LineComment}},

		// Inherit mode (/...) so a literal's anonymous quote and content
		// children carry the string class too, and the whole literal
		// coalesces into one span.
		{Selector: "interpreted_string_literal/...", Tags: []*lattice.Tag{tags.String}},
		{Selector: "raw_string_literal/...", Tags: []*lattice.Tag{tags.String}},
		{Selector: "rune_literal", Tags: []*lattice.Tag{tags.Character}},
		{Selector: "escape_sequence", Tags: []*lattice.Tag{tags.Escape}},

		{Selector: "int_literal", Tags: []*lattice.Tag{tags.Integer}},
		{Selector: "float_literal", Tags: []*lattice.Tag{tags.Float}},
		{Selector: "imaginary_literal", Tags: []*lattice.Tag{tags.Float}},
		{Selector: "true", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "false", Tags: []*lattice.Tag{tags.Bool}},
		{Selector: "nil", Tags: []*lattice.Tag{tags.Null}},
		{Selector: "iota", Tags: []*lattice.Tag{tags.Keyword}},

		{Selector: "type_identifier", Tags: []*lattice.Tag{tags.TypeName}},
		{Selector: "field_identifier", Tags: []*lattice.Tag{tags.PropertyName}},
		{Selector: "package_identifier", Tags: []*lattice.Tag{tags.Namespace}},
		{Selector: "label_name", Tags: []*lattice.Tag{tags.Namespace}},

		// call_expression/identifier -> the callee; more specific than
		// the bare "identifier" fallback so it wins regardless of
		// declaration order (spec.md §4.B, context depth first).
		{Selector: "call_expression/identifier", Tags: []*lattice.Tag{tags.FunctionName}},
		{Selector: "call_expression/selector_expression/field_identifier", Tags: []*lattice.Tag{tags.FunctionName}},
		{Selector: "function_declaration/identifier", Tags: []*lattice.Tag{Definition(tags.FunctionName)}},
		{Selector: "method_declaration/field_identifier", Tags: []*lattice.Tag{Definition(tags.FunctionName)}},
		{Selector: "parameter_declaration/identifier", Tags: []*lattice.Tag{Definition(tags.VariableName)}},
		// := and var bind a name that may be reassigned; const does not,
		// so it stays plain Definition. Both modifiers apply to the same
		// tag here, exercising the lattice's power-set derivation
		// (spec.md §4.A) on real source rather than only in tests.
		{Selector: "short_var_declaration/identifier", Tags: []*lattice.Tag{Mutable(Definition(tags.VariableName))}},
		{Selector: "const_spec/identifier", Tags: []*lattice.Tag{Definition(tags.VariableName)}},
		{Selector: "var_spec/identifier", Tags: []*lattice.Tag{Mutable(Definition(tags.VariableName))}},
		{Selector: "identifier", Tags: []*lattice.Tag{tags.VariableName}},

		{Selector: "package", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "import", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "func", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "var", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "const", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "type", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "struct", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "interface", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "map", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "chan", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "if", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "else", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "for", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "range", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "return", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "go", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "defer", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "select", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "switch", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "case", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "default", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "break", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "continue", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "fallthrough", Tags: []*lattice.Tag{tags.Keyword}},
		{Selector: "goto", Tags: []*lattice.Tag{tags.Keyword}},

		// "*", "/", "!", and "!=" must be JSON-quoted: an unquoted piece
		// may not contain "/" or "!", and a bare "*" parses as the empty
		// wildcard target rather than the literal token (spec.md §6).
		{Selector: "+", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "-", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "\"*\"", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "\"/\"", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "%", Tags: []*lattice.Tag{tags.ArithmeticOperator}},
		{Selector: "==", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "\"!=\"", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "<", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "<=", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: ">", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: ">=", Tags: []*lattice.Tag{tags.CompareOperator}},
		{Selector: "&&", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: "||", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: "\"!\"", Tags: []*lattice.Tag{tags.LogicOperator}},
		{Selector: ":=", Tags: []*lattice.Tag{tags.Operator}},
		{Selector: "=", Tags: []*lattice.Tag{tags.Operator}},
		{Selector: "&", Tags: []*lattice.Tag{tags.BitwiseOperator}},
		{Selector: "|", Tags: []*lattice.Tag{tags.BitwiseOperator}},
		{Selector: "^", Tags: []*lattice.Tag{tags.BitwiseOperator}},
		{Selector: "<-", Tags: []*lattice.Tag{tags.Operator}},

		{Selector: "(", Tags: []*lattice.Tag{tags.Paren}},
		{Selector: ")", Tags: []*lattice.Tag{tags.Paren}},
		{Selector: "[", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: "]", Tags: []*lattice.Tag{tags.SquareBracket}},
		{Selector: "{", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: "}", Tags: []*lattice.Tag{tags.Brace}},
		{Selector: ",", Tags: []*lattice.Tag{tags.Separator}},
		{Selector: ";", Tags: []*lattice.Tag{tags.Separator}},
		{Selector: ".", Tags: []*lattice.Tag{tags.Separator}},

		{Selector: "ERROR", Tags: []*lattice.Tag{tags.Invalid}},
	}

	c, err := rule.Compile(specs)
	if err != nil {
		panic(err)
	}
	prop := rule.NewProp()
	prop.Add(c)

	return &Grammar{
		Language: golang.GetLanguage(),
		Prop:     prop,
	}
}
