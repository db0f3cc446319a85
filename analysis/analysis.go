// Package analysis implements the analysis state (spec §4.6, C6): a
// thin wrapper around the composite abstract state plus the set of
// symbolic expressions just computed and an auxiliary fixpoint-info
// map-lattice.
package analysis

import (
	"absint/state"
	"absint/symbolic"
)

// State wraps a composite abstract state with the pending expression
// set and auxiliary info map that the fixpoint and checks consult.
// Every transition returns a fresh instance (spec §4.6, "replaces the
// expression set with the expression(s) just computed").
type State struct {
	Composite   *state.State
	Expressions symbolic.Set
	Info        *FixpointInfo
}

// New wraps a composite state with an empty expression set and info
// map.
func New(s *state.State) *State {
	return &State{Composite: s, Expressions: symbolic.Set{}, Info: NewFixpointInfo()}
}

// WithExpressions returns a copy of this state with its expression set
// replaced (never merged) by exprs.
func (a *State) WithExpressions(exprs symbolic.Set) *State {
	return &State{Composite: a.Composite, Expressions: exprs, Info: a.Info}
}

// WithComposite returns a copy of this state over a different
// composite state, preserving the expression set and info map.
func (a *State) WithComposite(s *state.State) *State {
	return &State{Composite: s, Expressions: a.Expressions, Info: a.Info}
}

func (a *State) IsTop() bool    { return a.Composite.IsTop() }
func (a *State) IsBottom() bool { return a.Composite.IsBottom() }

func (a *State) Leq(other *State) bool {
	return a.Composite.Leq(other.Composite) && a.Info.Leq(other.Info)
}

func (a *State) Equal(other *State) bool {
	return a.Leq(other) && other.Leq(a)
}

func (a *State) Join(other *State) *State {
	return &State{
		Composite:   a.Composite.Join(other.Composite),
		Expressions: a.Expressions.Union(other.Expressions),
		Info:        a.Info.Join(other.Info),
	}
}

func (a *State) Meet(other *State) *State {
	return &State{
		Composite:   a.Composite.Meet(other.Composite),
		Expressions: a.Expressions.Union(other.Expressions),
		Info:        a.Info.Meet(other.Info),
	}
}

func (a *State) Widen(other *State) *State {
	return &State{
		Composite:   a.Composite.Widen(other.Composite),
		Expressions: a.Expressions.Union(other.Expressions),
		Info:        a.Info.Widen(other.Info),
	}
}

func (a *State) Narrow(other *State) *State {
	return &State{
		Composite:   a.Composite.Narrow(other.Composite),
		Expressions: a.Expressions.Union(other.Expressions),
		Info:        a.Info.Narrow(other.Info),
	}
}
