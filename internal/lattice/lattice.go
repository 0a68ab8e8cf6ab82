// Package lattice implements the highlight-tag lattice: interned tags
// with specificity chains, and modifiers that derive new tags obeying
// idempotence and commutativity.
package lattice

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrIllegalTagDerivation is returned by Registry.Define when the
// requested parent tag is itself modified.
var ErrIllegalTagDerivation = errors.New("lattice: illegal tag derivation from a modified parent")

// TagID is a process-unique, monotonically assigned tag identity.
type TagID int

// ModifierID is a process-unique, monotonically assigned modifier identity.
type ModifierID int

// Tag is an interned highlight tag. Zero value is not valid; obtain
// tags via Registry.Define or by applying a Modifier.
type Tag struct {
	id   TagID
	Name string

	// base is nil for an unmodified tag, otherwise the unmodified root.
	base *Tag
	// parent is the declared parent for an unmodified tag (nil for a root tag).
	parent *Tag
	// Modified is the sorted (ascending by id) set of modifiers applied.
	Modified []ModifierID

	// Set is the specificity chain: Set[0] == self, most specific first.
	Set []*Tag
}

// ID returns the tag's process-unique identity.
func (t *Tag) ID() TagID { return t.id }

// IsModified reports whether t was derived via a modifier.
func (t *Tag) IsModified() bool { return t.base != nil }

// Base returns the unmodified root tag for a modified tag, or t itself
// if t is unmodified.
func (t *Tag) Base() *Tag {
	if t.base != nil {
		return t.base
	}
	return t
}

func (t *Tag) String() string {
	if t.Name == "" {
		return fmt.Sprintf("tag#%d", t.id)
	}
	return t.Name
}

type modifierState struct {
	id    ModifierID
	name  string
	cache map[string]*Tag
}

// Modifier is a function tag->tag that commutes with other modifiers
// and is idempotent; obtained from Registry.DefineModifier.
type Modifier struct {
	state *modifierState
	reg   *Registry
}

func (m *Modifier) ID() ModifierID { return m.state.id }
func (m *Modifier) Name() string   { return m.state.name }

// Apply applies m to t, returning the (possibly newly interned) result.
func (m *Modifier) Apply(t *Tag) *Tag {
	return m.reg.apply(m.state.id, t)
}

// Registry owns tag/modifier identity allocation and the modifier
// instance caches. The zero value is ready to use.
type Registry struct {
	mu        sync.Mutex
	nextTagID TagID
	nextModID ModifierID
	modifiers map[ModifierID]*modifierState
}

// Default is the process-wide registry used by package-level helpers.
var Default = &Registry{}

func (r *Registry) init() {
	if r.modifiers == nil {
		r.modifiers = make(map[ModifierID]*modifierState)
	}
}

// Define creates a fresh unmodified tag, optionally as a child of
// parent. It fails with ErrIllegalTagDerivation if parent is modified.
func (r *Registry) Define(name string, parent *Tag) (*Tag, error) {
	if parent != nil && parent.IsModified() {
		return nil, fmt.Errorf("lattice: define %q under %q: %w", name, parent, ErrIllegalTagDerivation)
	}

	r.mu.Lock()
	id := r.nextTagID
	r.nextTagID++
	r.mu.Unlock()

	t := &Tag{id: id, Name: name, parent: parent}
	if parent != nil {
		t.Set = make([]*Tag, 0, len(parent.Set)+1)
		t.Set = append(t.Set, t)
		t.Set = append(t.Set, parent.Set...)
	} else {
		t.Set = []*Tag{t}
	}
	return t, nil
}

// DefineModifier registers a new modifier and returns it.
func (r *Registry) DefineModifier(name string) *Modifier {
	r.mu.Lock()
	r.init()
	id := r.nextModID
	r.nextModID++
	st := &modifierState{id: id, name: name, cache: make(map[string]*Tag)}
	r.modifiers[id] = st
	r.mu.Unlock()

	return &Modifier{state: st, reg: r}
}

// Define is a convenience wrapper around Default.Define.
func Define(name string, parent *Tag) (*Tag, error) { return Default.Define(name, parent) }

// DefineModifier is a convenience wrapper around Default.DefineModifier.
func DefineModifier(name string) *Modifier { return Default.DefineModifier(name) }

func sortedUnion(existing []ModifierID, add ModifierID) []ModifierID {
	for _, id := range existing {
		if id == add {
			return existing
		}
	}
	out := make([]ModifierID, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, add)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func modKey(baseID TagID, mods []ModifierID) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(baseID)))
	for _, m := range mods {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(m)))
	}
	return sb.String()
}

// apply is the normative algorithm of spec.md §4.A step 1-5, one
// modifier at a time; commutativity/idempotence fall out of the
// canonical sorted-key intern cache.
func (r *Registry) apply(modID ModifierID, t *Tag) *Tag {
	// 1. already applied -> identity
	for _, id := range t.Modified {
		if id == modID {
			return t
		}
	}

	// 2. compute new modifier set
	newMods := sortedUnion(t.Modified, modID)
	base := t.Base()
	key := modKey(base.id, newMods)

	// 3. already interned?
	r.mu.Lock()
	st, ok := r.modifiers[modID]
	if !ok {
		r.mu.Unlock()
		panic("lattice: modifier not registered with this registry")
	}
	if cached, ok := st.cache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	// 4. create + compute Set.
	res := &Tag{base: base, Modified: newMods}
	r.mu.Lock()
	res.id = r.nextTagID
	r.nextTagID++
	r.mu.Unlock()
	res.Name = deriveName(base, newMods, r)
	res.Set = r.computeSet(res, base, newMods)

	// 5. register in every participating modifier's cache.
	r.mu.Lock()
	for _, id := range newMods {
		if participant, ok := r.modifiers[id]; ok {
			participant.cache[key] = res
		}
	}
	r.mu.Unlock()

	return res
}

func deriveName(base *Tag, mods []ModifierID, r *Registry) string {
	if base.Name == "" {
		return ""
	}
	var names []string
	r.mu.Lock()
	for _, id := range mods {
		if st, ok := r.modifiers[id]; ok && st.name != "" {
			names = append(names, st.name)
		}
	}
	r.mu.Unlock()
	if len(names) == 0 {
		return base.Name
	}
	return strings.Join(names, "+") + "(" + base.Name + ")"
}

// applySetSorted returns the tag for base with exactly the modifiers in
// ids (sorted) applied, folding Modifier.Apply across them; used both
// for the public API's composition and internally by computeSet.
func (r *Registry) applySetSorted(base *Tag, ids []ModifierID) *Tag {
	cur := base
	for _, id := range ids {
		r.mu.Lock()
		st, ok := r.modifiers[id]
		r.mu.Unlock()
		if !ok {
			continue
		}
		cur = r.apply(st.id, cur)
	}
	return cur
}

// computeSet implements spec.md §4.A step 4: enumerate every non-empty
// subset of mods (size descending), then the empty subset (the bare
// ancestors), pair each with every unmodified ancestor of base,
// skipping the (mods, base) pair that is res itself, with res first.
func (r *Registry) computeSet(res *Tag, base *Tag, mods []ModifierID) []*Tag {
	subsets := powerSetDescending(mods)

	out := make([]*Tag, 0, len(subsets)*len(base.Set)+1)
	seen := make(map[TagID]bool)
	out = append(out, res)
	seen[res.id] = true

	for _, subset := range subsets {
		for _, anc := range base.Set {
			if anc.IsModified() {
				continue
			}
			if len(subset) == len(mods) && anc.id == base.id {
				continue // that pair is res itself
			}
			var derived *Tag
			if len(subset) == 0 {
				derived = anc
			} else {
				derived = r.applySetSorted(anc, subset)
			}
			if seen[derived.id] {
				continue
			}
			seen[derived.id] = true
			out = append(out, derived)
		}
	}

	return out
}

// powerSetDescending returns every non-empty subset of ids, ordered by
// decreasing size, followed by the empty subset (nil) as the last
// entry; ties are broken by the subset's lexicographic bitmask
// (stable and deterministic; the exact tie order among equal-size
// subsets doesn't affect any spec.md invariant since they all collapse
// to distinct derived tags).
func powerSetDescending(ids []ModifierID) [][]ModifierID {
	n := len(ids)
	total := 1 << n
	subsets := make([][]ModifierID, 0, total)
	for mask := 1; mask < total; mask++ {
		var s []ModifierID
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				s = append(s, ids[i])
			}
		}
		subsets = append(subsets, s)
	}
	sort.SliceStable(subsets, func(i, j int) bool {
		return len(subsets[i]) > len(subsets[j])
	})
	// The empty subset (Ms=∅) represents the bare unmodified ancestor
	// itself; it is the least specific, so it always sorts last.
	subsets = append(subsets, nil)
	return subsets
}
