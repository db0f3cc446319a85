package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absint/lattice"
	"absint/symbolic"
)

// intervalElement is a tiny two-point lattice (zero vs nonzero) used only
// to exercise Environment's pointwise operations without depending on a
// concrete reference domain.
type intervalElement struct{ top, bottom, nonzero bool }

func (e intervalElement) IsTop() bool    { return e.top }
func (e intervalElement) IsBottom() bool { return e.bottom }
func (e intervalElement) Leq(o lattice.Element) bool {
	other := o.(intervalElement)
	if e.bottom || other.top {
		return true
	}
	if other.bottom || e.top {
		return e.bottom && other.bottom || e.top && other.top
	}
	return e.nonzero == other.nonzero
}
func (e intervalElement) Equal(o lattice.Element) bool { return e.Leq(o) && o.(intervalElement).Leq(e) }
func (e intervalElement) Join(o lattice.Element) lattice.Element {
	other := o.(intervalElement)
	if e.bottom {
		return other
	}
	if other.bottom {
		return e
	}
	if e.top || other.top || e.nonzero != other.nonzero {
		return intervalElement{top: true}
	}
	return e
}
func (e intervalElement) Meet(o lattice.Element) lattice.Element {
	other := o.(intervalElement)
	if e.Equal(other) {
		return e
	}
	return intervalElement{bottom: true}
}
func (e intervalElement) Widen(o lattice.Element) lattice.Element { return e.Join(o) }
func (e intervalElement) Narrow(o lattice.Element) lattice.Element {
	if o.(intervalElement).Leq(e) {
		return o
	}
	return e
}

type intervalFactory struct{}

func (intervalFactory) Top() lattice.Element    { return intervalElement{top: true} }
func (intervalFactory) Bottom() lattice.Element { return intervalElement{bottom: true} }

func strongVar(name string) symbolic.Identifier {
	return &symbolic.Variable{Ident: name}
}

func weakVar(name string) symbolic.Identifier {
	return &symbolic.Variable{Ident: name, IsWeak: true}
}

func TestAssignStrongOverwrites(t *testing.T) {
	e := New(intervalFactory{})
	e = e.Assign(strongVar("x"), intervalElement{nonzero: true})
	e = e.Assign(strongVar("x"), intervalElement{nonzero: false})

	assert.Equal(t, intervalElement{nonzero: false}, e.GetState(strongVar("x")))
}

func TestAssignWeakJoins(t *testing.T) {
	e := New(intervalFactory{})
	e = e.Assign(strongVar("x"), intervalElement{nonzero: true})
	e = e.Assign(weakVar("x"), intervalElement{nonzero: false})

	got := e.GetState(strongVar("x"))
	require.True(t, got.(intervalElement).top, "joining distinct values on a weak id must go to top")
}

func TestGetStateMissingKeyIsBottom(t *testing.T) {
	e := New(intervalFactory{})
	assert.True(t, e.GetState(strongVar("never-assigned")).IsBottom())
}

func TestPointwiseJoinAgreesPerKey(t *testing.T) {
	a := New(intervalFactory{}).Assign(strongVar("x"), intervalElement{nonzero: true})
	b := New(intervalFactory{}).Assign(strongVar("x"), intervalElement{nonzero: true}).
		Assign(strongVar("y"), intervalElement{nonzero: false})

	joined := a.Join(b)

	assert.Equal(t, a.GetState(strongVar("x")).Join(b.GetState(strongVar("x"))), joined.GetState(strongVar("x")))
	assert.Equal(t, a.GetState(strongVar("y")).Join(b.GetState(strongVar("y"))), joined.GetState(strongVar("y")))
}

func TestForgetRemovesBinding(t *testing.T) {
	e := New(intervalFactory{}).Assign(strongVar("x"), intervalElement{nonzero: true})
	e = e.Forget(strongVar("x"))

	assert.True(t, e.GetState(strongVar("x")).IsBottom())
}

func TestTopAndBottomEnvironments(t *testing.T) {
	top := Top(intervalFactory{})
	bottom := Bottom(intervalFactory{})

	assert.True(t, top.GetState(strongVar("anything")).IsTop())
	assert.True(t, bottom.GetState(strongVar("anything")).IsBottom())
	assert.True(t, bottom.Leq(top))
}
