// Package domain declares the capability contracts a pluggable value
// domain and type domain must satisfy to be threaded into the
// composite abstract state (spec §4.5, §9 "capability sets instead of
// deep class hierarchies").
package domain

import (
	"absint/symbolic"
)

// Satisfaction is the three-valued result of testing a guard against an
// abstract state (spec §4.5, "satisfies(expr, pp) -> {TRUE, FALSE,
// UNKNOWN}").
type Satisfaction int

const (
	Unknown Satisfaction = iota
	True
	False
)

func (s Satisfaction) String() string {
	switch s {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Value is the capability a plugged-in value domain (constant
// propagation, sign, intervals, ...) must implement. It repeats
// lattice.Element's shape with Value-typed returns (rather than
// embedding lattice.Element) so composite callers never need a type
// assertion to get back a Value. Every method returns a fresh Value;
// domains are immutable once constructed.
type Value interface {
	IsTop() bool
	IsBottom() bool
	Leq(other Value) bool
	Equal(other Value) bool
	Join(other Value) Value
	Meet(other Value) Value
	Widen(other Value) Value
	Narrow(other Value) Value

	// Assign binds id to the abstract value of expr (strong or weak per
	// id.Weak()).
	Assign(id symbolic.Identifier, expr symbolic.Expr) Value
	// SmallStep evaluates expr without binding it to any identifier
	// (spec §3, "Small-step semantics").
	SmallStep(expr symbolic.Expr) Value
	// Assume restricts the domain to the states consistent with expr
	// evaluating to branch (true for a then-edge, false for an
	// else-edge).
	Assume(expr symbolic.Expr, branch bool) Value
	// Satisfies tests whether expr is known to evaluate to true, false,
	// or neither, in this abstract state.
	Satisfies(expr symbolic.Expr) Satisfaction
	// ForgetIdentifier drops any binding for id.
	ForgetIdentifier(id symbolic.Identifier) Value
	// ForgetIdentifiersIf drops every binding whose name satisfies pred.
	ForgetIdentifiersIf(pred func(name string) bool) Value
	// ApplyReplacement substitutes every occurrence of a source
	// identifier's binding by the join of the targets' bindings (spec
	// §4.5, "applyReplacements(V, subs)").
	ApplyReplacement(sources, targets []symbolic.Identifier) Value
	// PushScope/PopScope rescope every identifier this domain tracks
	// (spec §4.3, "Scope push/pop delegates to element").
	PushScope(token symbolic.ScopeToken) Value
	PopScope(token symbolic.ScopeToken) Value
}

// Type is the capability a plugged-in type domain must implement. It
// mirrors Value's identifier-indexed shape but carries type
// information rather than abstract numeric/symbolic values.
type Type interface {
	IsTop() bool
	IsBottom() bool
	Leq(other Type) bool
	Equal(other Type) bool
	Join(other Type) Type
	Meet(other Type) Type
	Widen(other Type) Type
	Narrow(other Type) Type

	Assign(id symbolic.Identifier, expr symbolic.Expr) Type
	ForgetIdentifier(id symbolic.Identifier) Type
	ForgetIdentifiersIf(pred func(name string) bool) Type
	PushScope(token symbolic.ScopeToken) Type
	PopScope(token symbolic.ScopeToken) Type
}

// TrivialType is the default Type domain for configurations that don't
// need type-level tracking: the type system registry is an external
// collaborator out of scope for the engine (spec §1), so the engine
// ships a no-op Type that is always top and never rejects a step.
type TrivialType struct{}

func (TrivialType) IsTop() bool                 { return true }
func (TrivialType) IsBottom() bool              { return false }
func (TrivialType) Leq(Type) bool               { return true }
func (TrivialType) Equal(Type) bool             { return true }
func (TrivialType) Join(Type) Type              { return TrivialType{} }
func (TrivialType) Meet(Type) Type              { return TrivialType{} }
func (TrivialType) Widen(Type) Type             { return TrivialType{} }
func (TrivialType) Narrow(Type) Type            { return TrivialType{} }
func (TrivialType) Assign(symbolic.Identifier, symbolic.Expr) Type { return TrivialType{} }
func (TrivialType) ForgetIdentifier(symbolic.Identifier) Type      { return TrivialType{} }
func (TrivialType) ForgetIdentifiersIf(func(string) bool) Type     { return TrivialType{} }
func (TrivialType) PushScope(symbolic.ScopeToken) Type             { return TrivialType{} }
func (TrivialType) PopScope(symbolic.ScopeToken) Type              { return TrivialType{} }
