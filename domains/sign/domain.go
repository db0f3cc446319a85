package sign

import (
	"absint/domain"
	"absint/env"
	"absint/lattice"
	"absint/symbolic"
)

type factory struct{}

func (factory) Top() lattice.Element    { return Top() }
func (factory) Bottom() lattice.Element { return BottomSign() }

// Domain is the sign-abstraction domain.Value: a pointwise environment
// of identifier to Sign.
type Domain struct {
	env *env.Environment
}

// New builds an empty (top) sign domain.
func New() *Domain { return &Domain{env: env.New(factory{})} }

// Bottom builds the unreachable sign domain.
func Bottom() *Domain { return &Domain{env: env.Bottom(factory{})} }

// Get returns the sign known for id, for tests and result inspection.
func (d *Domain) Get(id symbolic.Identifier) Sign {
	return d.env.GetState(id).(Sign)
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

func (d *Domain) Assign(id symbolic.Identifier, expr symbolic.Expr) domain.Value {
	return &Domain{env: d.env.Assign(id, d.eval(expr))}
}

func (d *Domain) SmallStep(expr symbolic.Expr) domain.Value { return d }

// Assume restricts the sign of a variable compared against the
// literal zero (spec §3, "assume refines state along one branch"):
// this is the domain's whole reason for existing over constprop's
// identity Assume.
func (d *Domain) Assume(expr symbolic.Expr, branch bool) domain.Value {
	bin, ok := expr.(*symbolic.BinaryOp)
	if !ok {
		return d
	}
	v, op, ok := zeroComparison(bin)
	if !ok {
		return d
	}
	if !branch {
		op = negateOp(op)
	}
	refined := refine(d.eval(v), op)
	return &Domain{env: d.env.Assign(v.(symbolic.Identifier), refined)}
}

// zeroComparison reports whether bin compares a variable against the
// constant 0, returning the variable side and a normalized operator
// (as if the variable were always on the left).
func zeroComparison(bin *symbolic.BinaryOp) (symbolic.Expr, string, bool) {
	if isZero(bin.Right) {
		if _, ok := bin.Left.(symbolic.Identifier); ok {
			return bin.Left, bin.Op, true
		}
	}
	if isZero(bin.Left) {
		if _, ok := bin.Right.(symbolic.Identifier); ok {
			return bin.Right, mirrorOp(bin.Op), true
		}
	}
	return nil, "", false
}

func isZero(e symbolic.Expr) bool {
	c, ok := e.(*symbolic.Constant)
	if !ok {
		return false
	}
	n, ok := c.Value.(int)
	return ok && n == 0
}

func mirrorOp(op string) string {
	switch op {
	case "<":
		return ">"
	case "<=":
		return ">="
	case ">":
		return "<"
	case ">=":
		return "<="
	default:
		return op
	}
}

func negateOp(op string) string {
	switch op {
	case "<":
		return ">="
	case "<=":
		return ">"
	case ">":
		return "<="
	case ">=":
		return "<"
	case "==":
		return "!="
	case "!=":
		return "=="
	default:
		return op
	}
}

func refine(s Sign, op string) Sign {
	switch op {
	case "<":
		return Sign{mask: s.mask & negBit}
	case "<=":
		return Sign{mask: s.mask & (negBit | zeroBit)}
	case ">":
		return Sign{mask: s.mask & posBit}
	case ">=":
		return Sign{mask: s.mask & (posBit | zeroBit)}
	case "==":
		return Sign{mask: s.mask & zeroBit}
	case "!=":
		return Sign{mask: s.mask & (negBit | posBit)}
	default:
		return s
	}
}

func (d *Domain) Satisfies(expr symbolic.Expr) domain.Satisfaction {
	bin, ok := expr.(*symbolic.BinaryOp)
	if !ok {
		return domain.Unknown
	}
	v, op, ok := zeroComparison(bin)
	if !ok {
		return domain.Unknown
	}
	s := d.eval(v)
	refined := refine(s, op)
	if refined.IsBottom() {
		return domain.False
	}
	if refined.mask == s.mask {
		return domain.True
	}
	return domain.Unknown
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

func (d *Domain) eval(expr symbolic.Expr) Sign {
	switch e := expr.(type) {
	case *symbolic.Constant:
		if v, ok := e.Value.(int); ok {
			return Of(v)
		}
		return Top()
	case *symbolic.Variable:
		return d.env.GetState(e).(Sign)
	case *symbolic.MetaVariable:
		return d.env.GetState(e).(Sign)
	case *symbolic.UnaryOp:
		v := d.eval(e.E)
		if e.Op == "-" {
			return v.Negate()
		}
		return Top()
	case *symbolic.BinaryOp:
		l, r := d.eval(e.Left), d.eval(e.Right)
		switch e.Op {
		case "+":
			return l.Add(r)
		case "-":
			return l.Sub(r)
		case "*":
			return l.Mul(r)
		default:
			return Top()
		}
	default:
		return Top()
	}
}
