// Package symbolic implements the engine's symbolic-expression IR (spec
// §3-§4.2, C2): a small, immutable, tagged-variant algebraic tree shared by
// every abstract domain. Following the teacher's AST node pattern
// (kanso/internal/ast/node.go), each variant is its own struct implementing
// one small interface rather than a deep class hierarchy (Design Notes,
// "Deep class hierarchies").
package symbolic

import "absint/source"

// Position aliases source.Position for brevity within this package.
type Position = source.Position

// Expr is the capability every symbolic-expression variant implements.
// Expressions are immutable: rescoping (Rescope) and rewriting
// (symbolic.Rewriter) always return a new tree, never mutate in place.
type Expr interface {
	// ExprKind names the variant, for switch dispatch and printing.
	ExprKind() Kind
	// Types is the static type set attached to this expression.
	Types() TypeSet
	// Pos is the program point this expression's root was built at.
	Pos() source.Position
	// Rescope returns a copy of this expression with every free Identifier
	// pushed into (or popped out of) the given scope (spec §3, "Scope
	// round-trip").
	Rescope(token ScopeToken, push bool) Expr
	String() string
}

// Kind tags each Expr variant.
type Kind int

const (
	KindSkip Kind = iota
	KindConstant
	KindVariable
	KindMetaVariable
	KindUnaryOp
	KindBinaryOp
	KindTernaryOp
	KindHeapAllocation
	KindHeapReference
	KindHeapDereference
	KindAccessChild
	KindPointerIdentifier
	KindAllocationSite
)

func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "Skip"
	case KindConstant:
		return "Constant"
	case KindVariable:
		return "Variable"
	case KindMetaVariable:
		return "MetaVariable"
	case KindUnaryOp:
		return "UnaryOp"
	case KindBinaryOp:
		return "BinaryOp"
	case KindTernaryOp:
		return "TernaryOp"
	case KindHeapAllocation:
		return "HeapAllocation"
	case KindHeapReference:
		return "HeapReference"
	case KindHeapDereference:
		return "HeapDereference"
	case KindAccessChild:
		return "AccessChild"
	case KindPointerIdentifier:
		return "PointerIdentifier"
	case KindAllocationSite:
		return "AllocationSite"
	default:
		return "Unknown"
	}
}

// Set is an unordered, de-duplicated collection of expressions, used
// throughout the engine wherever spec.md says "the set of ..." (pending
// expressions, rewriter results, heap pointer sets). Keyed by String()
// since expressions are immutable value trees.
type Set map[string]Expr

// NewSet builds a Set from the given expressions.
func NewSet(exprs ...Expr) Set {
	s := make(Set, len(exprs))
	for _, e := range exprs {
		s[e.String()] = e
	}
	return s
}

// Add inserts e into the set and returns the (possibly unchanged) set.
func (s Set) Add(e Expr) Set {
	s[e.String()] = e
	return s
}

// Union returns a new Set containing every expression in either set.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Slice returns the set's members in no particular order.
func (s Set) Slice() []Expr {
	out := make([]Expr, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}

// Only returns the single element of a singleton set, or nil otherwise.
func (s Set) Only() Expr {
	if len(s) != 1 {
		return nil
	}
	for _, v := range s {
		return v
	}
	return nil
}
