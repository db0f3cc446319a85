package reachingdefs

import (
	"absint/domain"
	"absint/env"
	"absint/lattice"
	"absint/symbolic"
)

type factory struct{}

func (factory) Top() lattice.Element    { return All() }
func (factory) Bottom() lattice.Element { return Empty() }

// Domain is the reaching-definitions domain.Value: a pointwise
// environment of identifier to DefSet.
type Domain struct {
	env *env.Environment
}

// New builds an empty reaching-definitions domain.
func New() *Domain { return &Domain{env: env.New(factory{})} }

// Bottom builds the unreachable reaching-definitions domain.
func Bottom() *Domain { return &Domain{env: env.Bottom(factory{})} }

// Get returns the DefSet known for id, for tests and result inspection.
func (d *Domain) Get(id symbolic.Identifier) DefSet {
	return d.env.GetState(id).(DefSet)
}

func (d *Domain) IsTop() bool    { return d.env.IsTop() }
func (d *Domain) IsBottom() bool { return d.env.IsBottom() }

func (d *Domain) Leq(other domain.Value) bool   { return d.env.Leq(other.(*Domain).env) }
func (d *Domain) Equal(other domain.Value) bool { return d.env.Equal(other.(*Domain).env) }

func (d *Domain) Join(other domain.Value) domain.Value {
	return &Domain{env: d.env.Join(other.(*Domain).env)}
}
func (d *Domain) Meet(other domain.Value) domain.Value {
	return &Domain{env: d.env.Meet(other.(*Domain).env)}
}
func (d *Domain) Widen(other domain.Value) domain.Value {
	return &Domain{env: d.env.Widen(other.(*Domain).env)}
}
func (d *Domain) Narrow(other domain.Value) domain.Value {
	return &Domain{env: d.env.Narrow(other.(*Domain).env)}
}

// Assign implements the textbook reaching-definitions transfer
// function: a strong assignment's gen/kill pair collapses into a
// single strong update to the singleton {this site}, since a fresh
// definition always kills every prior reaching definition for the same
// identifier. A weak identifier instead joins in the new site
// alongside whatever reached here before, matching a may-alias heap
// write that doesn't necessarily clobber every previous writer.
func (d *Domain) Assign(id symbolic.Identifier, expr symbolic.Expr) domain.Value {
	return &Domain{env: d.env.Assign(id, Single(SiteOf(expr)))}
}

// SmallStep is the identity: evaluating an expression without binding
// it defines nothing.
func (d *Domain) SmallStep(expr symbolic.Expr) domain.Value { return d }

// Assume is the identity: a guard never redefines a variable, so it
// cannot change which sites reach this point (spec §3, contrasted with
// sign/interval's Assume, which does refine on a guard).
func (d *Domain) Assume(expr symbolic.Expr, branch bool) domain.Value { return d }

// Satisfies never has an opinion: reaching definitions carries no
// value-level information to test a guard against.
func (d *Domain) Satisfies(expr symbolic.Expr) domain.Satisfaction { return domain.Unknown }

func (d *Domain) ForgetIdentifier(id symbolic.Identifier) domain.Value {
	return &Domain{env: d.env.Forget(id)}
}

func (d *Domain) ForgetIdentifiersIf(pred func(name string) bool) domain.Value {
	return &Domain{env: d.env.ForgetIf(pred)}
}

func (d *Domain) ApplyReplacement(sources, targets []symbolic.Identifier) domain.Value {
	out := d.env
	for _, src := range sources {
		val := out.GetState(src)
		for _, tgt := range targets {
			out = out.Assign(tgt, val)
		}
	}
	return &Domain{env: out}
}

func (d *Domain) PushScope(token symbolic.ScopeToken) domain.Value {
	return &Domain{env: d.env.PushScope(token)}
}

func (d *Domain) PopScope(token symbolic.ScopeToken) domain.Value {
	return &Domain{env: d.env.PopScope(token)}
}
