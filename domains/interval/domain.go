package interval

import (
	"absint/domain"
	"absint/env"
	"absint/lattice"
	"absint/symbolic"
)

type factory struct{}

func (factory) Top() lattice.Element    { return Top() }
func (factory) Bottom() lattice.Element { return BottomInterval() }

// Domain is the interval domain.Value: a pointwise environment of
// identifier to Interval.
type Domain struct {
	env *env.Environment
}

// New builds an empty interval domain.
func New() *Domain { return &Domain{env: env.New(factory{})} }

// Bottom builds the unreachable interval domain.
func Bottom() *Domain { return &Domain{env: env.Bottom(factory{})} }

// Get returns the interval known for id, for tests and result
// inspection.
func (d *Domain) Get(id symbolic.Identifier) Interval {
	return d.env.GetState(id).(Interval)
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

// Assume refines a variable's interval against a comparison with an
// integer constant (spec §3, "assume restricts state along a branch").
func (d *Domain) Assume(expr symbolic.Expr, branch bool) domain.Value {
	bin, ok := expr.(*symbolic.BinaryOp)
	if !ok {
		return d
	}
	v, op, c, ok := constantComparison(bin)
	if !ok {
		return d
	}
	if !branch {
		op = negateOp(op)
	}
	refined := refine(d.eval(v), op, c)
	return &Domain{env: d.env.Assign(v.(symbolic.Identifier), refined)}
}

func constantComparison(bin *symbolic.BinaryOp) (symbolic.Expr, string, int64, bool) {
	if c, ok := asInt(bin.Right); ok {
		if _, ok := bin.Left.(symbolic.Identifier); ok {
			return bin.Left, bin.Op, c, true
		}
	}
	if c, ok := asInt(bin.Left); ok {
		if _, ok := bin.Right.(symbolic.Identifier); ok {
			return bin.Right, mirrorOp(bin.Op), c, true
		}
	}
	return nil, "", 0, false
}

func asInt(e symbolic.Expr) (int64, bool) {
	c, ok := e.(*symbolic.Constant)
	if !ok {
		return 0, false
	}
	switch v := c.Value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
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

func refine(i Interval, op string, c int64) Interval {
	switch op {
	case "<":
		return i.Meet(AtMost(c - 1)).(Interval)
	case "<=":
		return i.Meet(AtMost(c)).(Interval)
	case ">":
		return i.Meet(AtLeast(c + 1)).(Interval)
	case ">=":
		return i.Meet(AtLeast(c)).(Interval)
	case "==":
		return i.Meet(Of(c)).(Interval)
	default: // "!=" can't be expressed as one interval; no refinement
		return i
	}
}

func (d *Domain) Satisfies(expr symbolic.Expr) domain.Satisfaction {
	bin, ok := expr.(*symbolic.BinaryOp)
	if !ok {
		return domain.Unknown
	}
	v, op, c, ok := constantComparison(bin)
	if !ok {
		return domain.Unknown
	}
	i := d.eval(v)
	if i.IsBottom() {
		return domain.Unknown
	}
	if refine(i, op, c).IsBottom() {
		return domain.False
	}
	if refine(i, negateOp(op), c).IsBottom() {
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

func (d *Domain) eval(expr symbolic.Expr) Interval {
	switch e := expr.(type) {
	case *symbolic.Constant:
		if v, ok := asInt(e); ok {
			return Of(v)
		}
		return Top()
	case *symbolic.Variable:
		return d.env.GetState(e).(Interval)
	case *symbolic.MetaVariable:
		return d.env.GetState(e).(Interval)
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
