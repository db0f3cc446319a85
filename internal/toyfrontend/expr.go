package toyfrontend

import (
	"strconv"

	"absint/source"
	"absint/symbolic"
)

// toExpr lowers a parsed Expr into the engine's symbolic IR (spec §3).
// Like the teacher's own expression grammar, there is no precedence
// climbing here: BinaryExpr folds its operator list strictly left to
// right, the same flat shape grammar/grammar.go uses for Kanso's own
// expressions.
func toExpr(e *Expr) symbolic.Expr {
	return toBinary(e.Binary)
}

func toBinary(b *BinaryExpr) symbolic.Expr {
	left := toUnary(b.Left)
	for _, op := range b.Ops {
		left = &symbolic.BinaryOp{
			At:    toPosition(op.Right.Pos),
			Type:  symbolic.NewTypeSet("any"),
			Op:    op.Operator,
			Left:  left,
			Right: toUnary(op.Right),
		}
	}
	return left
}

func toUnary(u *UnaryExpr) symbolic.Expr {
	p := toPrimary(u.Primary)
	if u.Negate {
		return &symbolic.UnaryOp{At: toPosition(u.Pos), Type: symbolic.NewTypeSet("any"), Op: "-", E: p}
	}
	return p
}

func toPrimary(p *Primary) symbolic.Expr {
	switch {
	case p.New != nil:
		at := toPosition(p.New.Pos)
		return &symbolic.HeapReference{
			At:   at,
			Type: symbolic.NewTypeSet(p.New.Type),
			Inner: &symbolic.HeapAllocation{
				At:   at,
				Type: symbolic.NewTypeSet(p.New.Type),
				Loc:  source.CodeLocation{Position: at},
			},
		}
	case p.Number != nil:
		v, _ := strconv.Atoi(*p.Number)
		return &symbolic.Constant{At: toPosition(p.Pos), Type: symbolic.NewTypeSet("int"), Value: v}
	case p.Nondet:
		return &symbolic.Variable{At: toPosition(p.Pos), Type: symbolic.NewTypeSet("bool"), Ident: "*"}
	case p.Ident != nil:
		return &symbolic.Variable{At: toPosition(p.Pos), Type: symbolic.NewTypeSet("any"), Ident: *p.Ident}
	case p.Parens != nil:
		return toExpr(p.Parens)
	}
	return &symbolic.Skip{At: toPosition(p.Pos)}
}
