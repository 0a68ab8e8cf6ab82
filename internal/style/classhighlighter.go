package style

import "strings"

// ClassHighlighter builds a Highlighter that namespaces every class
// with prefix (e.g. "tmk-"), the shape used by internal/theme to turn
// a chroma style into stylesheet classes (spec.md §6, "Class Output
// Shape"). A pair's Class may itself be space-joined (e.g. "name
// definition") to produce two-class composite output for a single
// modifier-qualified tag (e.g. definition(variableName) -> "tmk-name
// tmk-definition"); every space-separated token gets its own prefix,
// since a renderer resolving classes one token at a time (like
// cmd/tagmark's palette lookup) expects each token to carry it.
func ClassHighlighter(pairs []Pair, prefix string) *Highlighter {
	prefixed := make([]Pair, len(pairs))
	for i, p := range pairs {
		tokens := strings.Fields(p.Class)
		for j, tok := range tokens {
			tokens[j] = prefix + tok
		}
		prefixed[i] = Pair{Tag: p.Tag, Class: strings.Join(tokens, " ")}
	}
	return TagHighlighter(prefixed, Options{})
}
