package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundedSet is a tiny finite-height test lattice used to exercise the
// quantified invariants in spec §8: a flat powerset of {0,1,2} ordered by
// inclusion, with an explicit Top/Bottom.
type boundedSet struct {
	top, bottom bool
	members     map[int]bool
}

func newSet(vals ...int) *boundedSet {
	m := map[int]bool{}
	for _, v := range vals {
		m[v] = true
	}
	return &boundedSet{members: m}
}

func top() *boundedSet    { return &boundedSet{top: true} }
func bottom() *boundedSet { return &boundedSet{bottom: true} }

func (s *boundedSet) IsTop() bool    { return s.top }
func (s *boundedSet) IsBottom() bool { return s.bottom && !s.top }

func (s *boundedSet) Leq(o Element) bool {
	other := o.(*boundedSet)
	if s.IsBottom() || other.IsTop() {
		return true
	}
	if other.IsBottom() || s.IsTop() {
		return s.IsBottom() && other.IsBottom() || s.IsTop() && other.IsTop()
	}
	for v := range s.members {
		if !other.members[v] {
			return false
		}
	}
	return true
}

func (s *boundedSet) Equal(o Element) bool { return s.Leq(o) && o.(*boundedSet).Leq(s) }

func (s *boundedSet) Join(o Element) Element {
	other := o.(*boundedSet)
	if s.IsTop() || other.IsTop() {
		return top()
	}
	if s.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return s
	}
	out := newSet()
	for v := range s.members {
		out.members[v] = true
	}
	for v := range other.members {
		out.members[v] = true
	}
	return out
}

func (s *boundedSet) Meet(o Element) Element {
	other := o.(*boundedSet)
	if s.IsBottom() || other.IsBottom() {
		return bottom()
	}
	if s.IsTop() {
		return other
	}
	if other.IsTop() {
		return s
	}
	out := newSet()
	for v := range s.members {
		if other.members[v] {
			out.members[v] = true
		}
	}
	return out
}

// Widen jumps straight to Top once the sets differ, guaranteeing
// termination in one step past Join on this finite-height lattice.
func (s *boundedSet) Widen(o Element) Element {
	j := s.Join(o)
	if j.(*boundedSet).Equal(s) {
		return j
	}
	return top()
}

func (s *boundedSet) Narrow(o Element) Element { return s.Meet(o) }

func TestLatticeReflexivity(t *testing.T) {
	for _, x := range []*boundedSet{bottom(), top(), newSet(0), newSet(0, 1, 2)} {
		assert.True(t, x.Leq(x))
	}
}

func TestLatticeAntisymmetry(t *testing.T) {
	a, b := newSet(0, 1), newSet(1, 0)
	require.True(t, a.Leq(b) && b.Leq(a))
	assert.True(t, a.Equal(b))
}

func TestLatticeLUBIsBound(t *testing.T) {
	a, b := newSet(0), newSet(1)
	j := a.Join(b)
	assert.True(t, a.Leq(j))
	assert.True(t, b.Leq(j))

	// least: any z with a<=z and b<=z must have j<=z.
	z := newSet(0, 1, 2)
	assert.True(t, j.Leq(z))
}

func TestLatticeGLBIsBound(t *testing.T) {
	a, b := newSet(0, 1), newSet(1, 2)
	m := a.Meet(b)
	assert.True(t, m.Leq(a))
	assert.True(t, m.Leq(b))
}

func TestWideningSoundness(t *testing.T) {
	a, b := newSet(0), newSet(1)
	j := a.Join(b)
	w := a.Widen(b)
	assert.True(t, j.Leq(w))
}

func TestWideningTerminatesAscendingChain(t *testing.T) {
	chain := []*boundedSet{newSet(0), newSet(0, 1), newSet(0, 1, 2)}
	acc := Element(bottom())
	for i, x := range chain {
		acc = acc.Widen(x)
		if i == len(chain)-1 {
			assert.True(t, acc.IsTop(), "widening must stabilize by the end of a finite ascending chain")
		}
	}
	// further widening with anything already <= acc must not move it.
	stable := acc.Widen(newSet(0))
	assert.True(t, stable.Equal(acc))
}

func TestBottomAndTopBounds(t *testing.T) {
	x := newSet(1)
	assert.True(t, bottom().Leq(x))
	assert.True(t, x.Leq(top()))
}
