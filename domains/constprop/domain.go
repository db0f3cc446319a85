package constprop

import (
	"absint/domain"
	"absint/env"
	"absint/lattice"
	"absint/symbolic"
)

type factory struct{}

func (factory) Top() lattice.Element    { return TopConst() }
func (factory) Bottom() lattice.Element { return BottomConst() }

// Domain is the constant-propagation domain.Value: a pointwise
// environment of identifier to Const.
type Domain struct {
	env *env.Environment
}

// New builds an empty constant-propagation domain.
func New() *Domain { return &Domain{env: env.New(factory{})} }

// Top builds the top domain (every identifier unconstrained).
func Top() *Domain { return &Domain{env: env.Top(factory{})} }

// Bottom builds the bottom domain (unreachable).
func Bottom() *Domain { return &Domain{env: env.Bottom(factory{})} }

// Get returns the constant known for id, for tests and result
// inspection.
func (d *Domain) Get(id symbolic.Identifier) Const {
	return d.env.GetState(id).(Const)
}

func (d *Domain) IsTop() bool    { return d.env.IsTop() }
func (d *Domain) IsBottom() bool { return d.env.IsBottom() }

func (d *Domain) Leq(other domain.Value) bool  { return d.env.Leq(other.(*Domain).env) }
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

func (d *Domain) Assign(id symbolic.Identifier, expr symbolic.Expr) domain.Value {
	return &Domain{env: d.env.Assign(id, d.eval(expr))}
}

// SmallStep is a pure evaluation: it never binds a result, so running
// it twice in a row is trivially idempotent (spec §8, property 8).
func (d *Domain) SmallStep(expr symbolic.Expr) domain.Value {
	return d
}

// Assume is the identity: constant propagation does not refine on
// comparisons (a sign or interval domain is what exercises Assume
// meaningfully).
func (d *Domain) Assume(expr symbolic.Expr, branch bool) domain.Value {
	return d
}

func (d *Domain) Satisfies(expr symbolic.Expr) domain.Satisfaction {
	bin, ok := expr.(*symbolic.BinaryOp)
	if !ok {
		return domain.Unknown
	}
	l, lok := d.eval(bin.Left).Value()
	r, rok := d.eval(bin.Right).Value()
	if !lok || !rok {
		return domain.Unknown
	}
	var truth bool
	switch bin.Op {
	case "<":
		truth = l < r
	case "<=":
		truth = l <= r
	case ">":
		truth = l > r
	case ">=":
		truth = l >= r
	case "==":
		truth = l == r
	case "!=":
		truth = l != r
	default:
		return domain.Unknown
	}
	if truth {
		return domain.True
	}
	return domain.False
}

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

func (d *Domain) eval(expr symbolic.Expr) Const {
	switch e := expr.(type) {
	case *symbolic.Constant:
		if v, ok := e.Value.(int); ok {
			return Of(v)
		}
		return TopConst()
	case *symbolic.Variable:
		return d.env.GetState(e).(Const)
	case *symbolic.MetaVariable:
		return d.env.GetState(e).(Const)
	case *symbolic.UnaryOp:
		v := d.eval(e.E)
		return applyUnary(e.Op, v)
	case *symbolic.BinaryOp:
		return applyBinary(e.Op, d.eval(e.Left), d.eval(e.Right))
	default:
		return TopConst()
	}
}

func applyUnary(op string, v Const) Const {
	n, ok := v.Value()
	if !ok {
		return v
	}
	switch op {
	case "-":
		return Of(-n)
	default:
		return TopConst()
	}
}

func applyBinary(op string, l, r Const) Const {
	lv, lok := l.Value()
	rv, rok := r.Value()
	if !lok || !rok {
		if l.IsBottom() || r.IsBottom() {
			return BottomConst()
		}
		return TopConst()
	}
	switch op {
	case "+":
		return Of(lv + rv)
	case "-":
		return Of(lv - rv)
	case "*":
		return Of(lv * rv)
	default:
		return TopConst()
	}
}
