package symbolic

import "absint/source"

// HeapContext is the minimal view of the heap environment the Rewriter
// needs (spec §4.2): given a variable already mapped in the heap, return
// its current pointer set. The heap domain (package heap) implements
// this; symbolic stays ignorant of the heap domain's representation so
// the dependency runs one way only.
type HeapContext interface {
	// Lookup returns the allocation sites a variable is known to point
	// to, and whether the variable is tracked at all.
	Lookup(name string) (sites []*AllocationSite, tracked bool)
	// SeenAt reports whether an allocation at loc has already been
	// observed along the current path, which is what makes a freshly
	// rewritten AllocationSite weak or strong (spec §4.2).
	SeenAt(loc source.CodeLocation) bool
}

// Rewriter implements the visitor of spec §4.2: it traverses a symbolic
// expression under a HeapContext and produces the set of value-level
// expressions (heap forms erased) that the value domain should interpret.
type Rewriter struct {
	Heap HeapContext
}

// NewRewriter builds a Rewriter over the given heap context.
func NewRewriter(ctx HeapContext) *Rewriter {
	return &Rewriter{Heap: ctx}
}

// Rewrite applies the rules of spec §4.2 and returns the resulting set of
// value expressions.
func (r *Rewriter) Rewrite(e Expr) Set {
	switch node := e.(type) {
	case *HeapAllocation:
		site := &AllocationSite{
			Type:   node.Type,
			Loc:    node.Loc,
			IsWeak: r.Heap.SeenAt(node.Loc),
		}
		return NewSet(site)

	case *HeapReference:
		loc := identifierName(node.Inner)
		return NewSet(&PointerIdentifier{At: node.At, Type: node.Type, TargetLocation: loc})

	case *HeapDereference:
		if v, ok := node.Inner.(*Variable); ok {
			if sites, tracked := r.Heap.Lookup(v.Name()); tracked {
				out := make(Set, len(sites))
				for _, s := range sites {
					out.Add(&PointerIdentifier{At: node.At, Type: node.Type, TargetLocation: s.Name(), IsWeak: s.IsWeak})
				}
				return out
			}
		}
		return r.Rewrite(node.Inner)

	case *AccessChild:
		if _, ok := node.Receiver.(*PointerIdentifier); ok {
			// A field/element access through a pointer weakens the
			// receiver's site field-insensitively (spec §4.2): the engine
			// does not track individual fields, so any write through this
			// access may alias any prior allocation at the same site.
			return NewSet(&AllocationSite{
				Type:   node.Type,
				Loc:    source.CodeLocation{Position: node.At},
				IsWeak: true,
			})
		}
		return r.Rewrite(node.Receiver)

	case *Variable:
		if sites, tracked := r.Heap.Lookup(node.Name()); tracked {
			out := make(Set, len(sites))
			for _, s := range sites {
				out.Add(&PointerIdentifier{At: node.At, Type: node.Type, TargetLocation: s.Name(), IsWeak: s.IsWeak})
			}
			return out
		}
		return NewSet(node)

	case *UnaryOp:
		return NewSet(&UnaryOp{At: node.At, Type: node.Type, Op: node.Op, E: r.rewriteOne(node.E)})

	case *BinaryOp:
		return NewSet(&BinaryOp{
			At: node.At, Type: node.Type, Op: node.Op,
			Left:  r.rewriteOne(node.Left),
			Right: r.rewriteOne(node.Right),
		})

	case *TernaryOp:
		return NewSet(&TernaryOp{
			At: node.At, Type: node.Type, Op: node.Op,
			A: r.rewriteOne(node.A), B: r.rewriteOne(node.B), C: r.rewriteOne(node.C),
		})

	default:
		// Skip, Constant, PointerIdentifier, AllocationSite, MetaVariable
		// all pass through unchanged (spec §4.2, "All other identifiers
		// pass through").
		return NewSet(e)
	}
}

// rewriteOne collapses a Rewrite result back to a single expression for
// composite operands, by joining multi-valued rewrites into the first
// candidate; callers that need the full fan-out should rewrite children
// themselves via Rewrite.
func (r *Rewriter) rewriteOne(e Expr) Expr {
	rewritten := r.Rewrite(e)
	if only := rewritten.Only(); only != nil {
		return only
	}
	if len(rewritten) == 0 {
		return e
	}
	// Field-insensitive operands: any representative member is sound to
	// thread through a composite operator's type-level operand slot, since
	// the operator only inspects e.Types()/e.String() structurally; the
	// value-level fan-out already happened at the enclosing Rewrite call.
	return rewritten.Slice()[0]
}

func identifierName(e Expr) string {
	if id, ok := e.(Identifier); ok {
		return id.Name()
	}
	return e.String()
}

