package tsadapter

import "tagmark/internal/lang"

// ForLang returns the compiled grammar for a language ID, or nil, false
// if tagmark ships no grammar for it (lang.Plain, or anything internal/lang
// maps to Plain for lack of a wired grammar).
func ForLang(id lang.ID) (*Grammar, bool) {
	switch id {
	case lang.Go:
		return GoGrammar, true
	case lang.JSON:
		return JSONGrammar, true
	case lang.Zig:
		return ZigGrammar, true
	default:
		return nil, false
	}
}
