// Package tags holds the process-wide highlight tag vocabulary that
// every grammar package (internal/tsadapter) and every theme
// (internal/theme) shares. Selector specs reference these tags by
// identity, not by name, so a grammar and a theme must both import
// this package rather than each defining their own.
//
// The hierarchy and naming follow the same open, extensible shape as
// spec.md §4.A: a handful of root tags, some with sub-tags on the
// specificity chain, plus modifiers that combine orthogonally with
// any of them.
package tags

import "tagmark/internal/lattice"

var reg = &lattice.Registry{}

func def(name string, parent *lattice.Tag) *lattice.Tag {
	t, err := reg.Define(name, parent)
	if err != nil {
		// Only reachable if parent is itself modified, which never
		// happens for the literals below.
		panic(err)
	}
	return t
}

var (
	Comment      = def("comment", nil)
	LineComment  = def("lineComment", Comment)
	BlockComment = def("blockComment", Comment)
	DocComment   = def("docComment", Comment)

	Name         = def("name", nil)
	VariableName = def("variableName", Name)
	PropertyName = def("propertyName", Name)
	FunctionName = def("functionName", Name)
	TypeName     = def("typeName", Name)
	Namespace    = def("namespace", Name)
	Macro        = def("macroName", Name)
	Keyword      = def("keyword", nil)

	Literal   = def("literal", nil)
	String    = def("string", Literal)
	Character = def("character", String)
	Number    = def("number", Literal)
	Integer   = def("integer", Number)
	Float     = def("float", Number)
	Bool      = def("bool", Literal)
	Null      = def("null", Literal)
	Regexp    = def("regexp", Literal)
	Escape    = def("escape", nil)

	Operator           = def("operator", nil)
	CompareOperator    = def("compareOperator", Operator)
	ArithmeticOperator = def("arithmeticOperator", Operator)
	LogicOperator      = def("logicOperator", Operator)
	BitwiseOperator    = def("bitwiseOperator", Operator)

	Punctuation    = def("punctuation", nil)
	Bracket        = def("bracket", Punctuation)
	Paren          = def("paren", Bracket)
	SquareBracket  = def("squareBracket", Bracket)
	Brace          = def("brace", Bracket)
	AngleBracket   = def("angleBracket", Bracket)
	Separator      = def("separator", Punctuation)

	Meta    = def("meta", nil)
	Invalid = def("invalid", nil)
)

// Definition marks the binding occurrence of a name (e.g. the x in
// "var x int", not a later use of x), same distinction spec.md's
// modifier-power-set derivation exists to make orthogonal to Name's
// sub-tags.
var Definition = reg.DefineModifier("definition")

// Mutable marks a name declared in a way that permits reassignment
// (var, :=), orthogonal to Definition -- a name can be both the
// binding occurrence and mutable, exercising the lattice's modifier
// power-set derivation (spec.md §4.A) with two modifiers on one tag.
var Mutable = reg.DefineModifier("mutable")
