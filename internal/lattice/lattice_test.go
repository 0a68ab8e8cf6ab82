package lattice_test

import (
	"errors"
	"testing"

	"tagmark/internal/lattice"
)

func newReg(t *testing.T) *lattice.Registry {
	t.Helper()
	return &lattice.Registry{}
}

func TestDefineParentInclusion(t *testing.T) {
	r := newReg(t)
	base, err := r.Define("base", nil)
	if err != nil {
		t.Fatalf("define base: %v", err)
	}
	child, err := r.Define("child", base)
	if err != nil {
		t.Fatalf("define child: %v", err)
	}

	if child.Set[0] != child {
		t.Fatalf("set[0] = %v, want self", child.Set[0])
	}
	if len(child.Set) != len(base.Set)+1 {
		t.Fatalf("child.Set len = %d, want %d", len(child.Set), len(base.Set)+1)
	}
	for i, anc := range base.Set {
		if child.Set[i+1] != anc {
			t.Fatalf("child.Set[%d] = %v, want %v", i+1, child.Set[i+1], anc)
		}
	}
}

func TestDefineRejectsModifiedParent(t *testing.T) {
	r := newReg(t)
	base, _ := r.Define("base", nil)
	m := r.DefineModifier("mod")
	modified := m.Apply(base)

	if _, err := r.Define("child", modified); !errors.Is(err, lattice.ErrIllegalTagDerivation) {
		t.Fatalf("err = %v, want ErrIllegalTagDerivation", err)
	}
}

func TestModifierIdempotence(t *testing.T) {
	r := newReg(t)
	base, _ := r.Define("base", nil)
	m := r.DefineModifier("mod")

	once := m.Apply(base)
	twice := m.Apply(once)

	if once != twice {
		t.Fatalf("m(m(t)) != m(t): %v vs %v", twice, once)
	}
}

func TestModifierCommutativity(t *testing.T) {
	r := newReg(t)
	base, _ := r.Define("base", nil)
	m1 := r.DefineModifier("m1")
	m2 := r.DefineModifier("m2")

	a := m1.Apply(m2.Apply(base))
	b := m2.Apply(m1.Apply(base))

	if a != b {
		t.Fatalf("m1(m2(t)) != m2(m1(t)): %v vs %v", a, b)
	}
}

func TestModifierCommutativityOtherOrderFirst(t *testing.T) {
	// Same as above but compute the "b" order first, to make sure
	// caching doesn't depend on which order runs first.
	r := newReg(t)
	base, _ := r.Define("base", nil)
	m1 := r.DefineModifier("m1")
	m2 := r.DefineModifier("m2")

	b := m2.Apply(m1.Apply(base))
	a := m1.Apply(m2.Apply(base))

	if a != b {
		t.Fatalf("m2(m1(t)) != m1(m2(t)): %v vs %v", b, a)
	}
}

func TestSpecificityChainMonotonicity(t *testing.T) {
	r := newReg(t)
	base, _ := r.Define("base", nil)
	m1 := r.DefineModifier("m1")
	m2 := r.DefineModifier("m2")

	combo := m1.Apply(m2.Apply(base))

	if combo.Set[0] != combo {
		t.Fatalf("set[0] != self")
	}
	seen := map[*lattice.Tag]bool{}
	for i, tg := range combo.Set {
		if seen[tg] {
			t.Fatalf("duplicate tag %v at index %d", tg, i)
		}
		seen[tg] = true
	}
	// combo itself has 2 modifiers; every other entry must have fewer.
	for _, tg := range combo.Set[1:] {
		if len(tg.Modified) >= len(combo.Modified) && tg.Base() == combo.Base() {
			t.Fatalf("entry %v not strictly less specific than combo", tg)
		}
	}
	// base itself (0 modifiers) must be present.
	found := false
	for _, tg := range combo.Set {
		if tg == base {
			found = true
		}
	}
	if !found {
		t.Fatalf("base not present in combo.Set")
	}
}

func TestModifierDerivationCoversAllSubsets(t *testing.T) {
	r := newReg(t)
	a, _ := r.Define("a", nil)
	b, _ := r.Define("b", a)
	m1 := r.DefineModifier("m1")
	m2 := r.DefineModifier("m2")

	combo := m1.Apply(m2.Apply(b))

	want := map[*lattice.Tag]bool{
		combo:                    true, // m1+m2(b)
		m1.Apply(m2.Apply(a)):    true, // m1+m2(a)
		m1.Apply(b):              true, // m1(b)
		m2.Apply(b):              true, // m2(b)
		b:                        true, // b
		m1.Apply(a):              true, // m1(a)
		m2.Apply(a):              true, // m2(a)
		a:                        true, // a
	}
	got := map[*lattice.Tag]bool{}
	for _, tg := range combo.Set {
		got[tg] = true
	}
	for tg := range want {
		if !got[tg] {
			t.Fatalf("combo.Set missing expected ancestor %v", tg)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("combo.Set has %d entries, want %d (got=%v)", len(got), len(want), combo.Set)
	}
}

func TestPackageLevelDefault(t *testing.T) {
	a, err := lattice.Define("pkg-level", nil)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	m := lattice.DefineModifier("pkg-mod")
	b := m.Apply(a)
	if !b.IsModified() {
		t.Fatalf("expected modified tag")
	}
}
