// Package rule compiles the selector path language into per-node-name
// Rule chains, attaches them to node types, and matches a chain
// against a cursor's ancestor context.
package rule

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tagmark/internal/lattice"
)

// ErrInvalidSelector is returned for a malformed selector string.
var ErrInvalidSelector = errors.New("rule: invalid selector")

// Mode is the tagged variant of a Rule's descent behavior.
type Mode int

const (
	Normal Mode = iota
	Inherit
	Opaque
)

func (m Mode) String() string {
	switch m {
	case Inherit:
		return "Inherit"
	case Opaque:
		return "Opaque"
	default:
		return "Normal"
	}
}

// Rule is the compiled form of one selector fragment.
type Rule struct {
	Tags []*lattice.Tag
	Mode Mode

	// context is nil when the selector part had no preceding pieces
	// (matches unconditionally). Otherwise it is stored innermost
	// (nearest parent) first, ready for ContextMatcher.
	context []string

	next *Rule
}

// Next returns the next, less-specific rule in the chain, or nil.
func (r *Rule) Next() *Rule { return r.next }

// HasContext reports whether r restricts by ancestor context.
func (r *Rule) HasContext() bool { return r.context != nil }

// Depth is the number of ancestor pieces in the context (0 if absent).
func (r *Rule) Depth() int { return len(r.context) }

// Spec is one input mapping from a selector string to the tag(s) it
// applies. A slice (not a map) keeps declaration order deterministic,
// which matters for the tie-break rule in Compile.
type Spec struct {
	Selector string
	Tags     []*lattice.Tag
}

// Compiled is the opaque per-target-name rule table produced by Compile.
type Compiled struct {
	byName map[string]*Rule
}

// RuleFor returns the head of the rule chain for a node type name, or
// nil if none was compiled for that name.
func (c *Compiled) RuleFor(name string) *Rule {
	if c == nil {
		return nil
	}
	return c.byName[name]
}

type parsedPart struct {
	pieces []string // pieces[len-1] is the target name; earlier are context, outer to inner
	mode   Mode
}

// Compile compiles a set of selector specs into a Compiled rule table.
// See spec.md §6 for the bit-exact grammar.
func Compile(specs []Spec) (*Compiled, error) {
	byName := make(map[string]*Rule)
	// depth -> insertion order counter within that depth, used only to
	// interleave ties deterministically: later insertions come first.
	type pending struct {
		name  string
		rule  *Rule
		depth int
		order int
	}
	var all []pending
	order := 0

	for _, spec := range specs {
		parts, err := splitSelector(spec.Selector)
		if err != nil {
			return nil, err
		}
		for _, raw := range parts {
			pp, err := parsePart(raw)
			if err != nil {
				return nil, err
			}
			target := pp.pieces[len(pp.pieces)-1]
			var ctx []string
			if len(pp.pieces) > 1 {
				outer := pp.pieces[:len(pp.pieces)-1]
				ctx = make([]string, len(outer))
				for i, p := range outer {
					ctx[len(outer)-1-i] = p // reverse -> innermost first
				}
			}
			r := &Rule{Tags: spec.Tags, Mode: pp.mode, context: ctx}
			all = append(all, pending{name: target, rule: r, depth: len(ctx), order: order})
			order++
		}
	}

	// Sort by depth descending; within equal depth, later insertion
	// (higher order) first, per spec.md §4.B.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].depth != all[j].depth {
			return all[i].depth > all[j].depth
		}
		return all[i].order > all[j].order
	})

	// Group by name preserving the sorted order, linking chains.
	tails := make(map[string]*Rule)
	for _, p := range all {
		if head, ok := byName[p.name]; !ok || head == nil {
			byName[p.name] = p.rule
			tails[p.name] = p.rule
			continue
		}
		tails[p.name].next = p.rule
		tails[p.name] = p.rule
	}

	return &Compiled{byName: byName}, nil
}

// splitSelector breaks a selector string into whitespace-separated parts.
func splitSelector(sel string) ([]string, error) {
	fields := strings.Fields(sel)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	return fields, nil
}

func parsePart(part string) (parsedPart, error) {
	body := part
	mode := Normal

	switch {
	case strings.HasSuffix(body, "/..."):
		mode = Inherit
		body = strings.TrimSuffix(body, "/...")
	case strings.HasSuffix(body, "!"):
		mode = Opaque
		body = strings.TrimSuffix(body, "!")
	}

	if body == "" {
		return parsedPart{}, fmt.Errorf("%w: empty target in %q", ErrInvalidSelector, part)
	}

	pieces, err := splitPieces(body)
	if err != nil {
		return parsedPart{}, fmt.Errorf("%w: %v in %q", ErrInvalidSelector, err, part)
	}
	if len(pieces) == 0 || pieces[len(pieces)-1] == "" {
		return parsedPart{}, fmt.Errorf("%w: empty target piece in %q", ErrInvalidSelector, part)
	}

	return parsedPart{pieces: pieces, mode: mode}, nil
}

// splitPieces splits a "/"-joined body into pieces, honoring JSON
// quoted pieces that may themselves contain "/".
func splitPieces(body string) ([]string, error) {
	var pieces []string
	i := 0
	for i < len(body) {
		if body[i] == '"' {
			end, err := findQuoteEnd(body, i)
			if err != nil {
				return nil, err
			}
			var decoded string
			if err := json.Unmarshal([]byte(body[i:end+1]), &decoded); err != nil {
				return nil, fmt.Errorf("bad quoted piece: %v", err)
			}
			pieces = append(pieces, decoded)
			i = end + 1
			if i < len(body) {
				if body[i] != '/' {
					return nil, fmt.Errorf("expected '/' after quoted piece")
				}
				i++
			}
			continue
		}

		j := strings.IndexByte(body[i:], '/')
		var piece string
		if j < 0 {
			piece = body[i:]
			i = len(body)
		} else {
			piece = body[i : i+j]
			i += j + 1
			if i == len(body) {
				return nil, fmt.Errorf("trailing '/' with no following piece")
			}
		}
		if piece == "" {
			return nil, fmt.Errorf("empty piece")
		}
		if strings.ContainsAny(piece, "!") {
			return nil, fmt.Errorf("stray '!' in piece %q", piece)
		}
		if piece == "*" {
			piece = ""
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

func findQuoteEnd(s string, start int) (int, error) {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i, nil
		}
	}
	return 0, fmt.Errorf("unbalanced quote")
}
