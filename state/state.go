// Package state implements the composite abstract state (spec §4.5,
// C5): a triple (heap, value, type) acting as both a Lattice and a
// semantic domain. Every transition applies the heap's rewrite first,
// then threads the resulting heap replacements into the value domain,
// mirroring the dependency order heap -> value -> type from spec §4.5.
package state

import (
	"absint/diag"
	"absint/domain"
	"absint/heap"
	"absint/source"
	"absint/symbolic"
)

// State is the composite abstract state threaded through the fixpoint.
type State struct {
	Heap  *heap.Heap
	Value domain.Value
	Type  domain.Type
}

// New builds a composite state from its three components.
func New(h *heap.Heap, v domain.Value, ty domain.Type) *State {
	return &State{Heap: h, Value: v, Type: ty}
}

// Assign implements spec §4.5 "assign(id, expr, pp)": heap rewrite
// first, then the value and type domains consume the rewritten
// expression, with pending heap replacements applied before the
// binding lands.
func (s *State) Assign(id symbolic.Identifier, expr symbolic.Expr, pp source.CodeLocation) (*State, error) {
	h2, rewritten := s.Heap.Assign(id, expr, pp)
	value, err := collapse(rewritten)
	if err != nil {
		return nil, &diag.SemanticError{Code: diag.CodeSemanticBadRewrite, Message: err.Error(), Position: pp.Position}
	}

	v := applyHeapReplacements(s.Value, h2)
	v = v.Assign(id, value)

	t := s.Type.Assign(id, value)

	return &State{Heap: h2.ClearReplacements(), Value: v, Type: t}, nil
}

// SmallStepSemantics implements spec §4.5 "smallStepSemantics(expr,
// pp)": the same heap-then-value-then-type pipeline as Assign, but
// without committing a binding.
func (s *State) SmallStepSemantics(expr symbolic.Expr, pp source.CodeLocation) (*State, error) {
	pre := s.Heap.SemanticsOf(expr, pp)
	rewritten := s.Heap.Rewrite(pre)
	value, err := collapse(rewritten)
	if err != nil {
		return nil, &diag.SemanticError{Code: diag.CodeSemanticBadRewrite, Message: err.Error(), Position: pp.Position}
	}

	v := applyHeapReplacements(s.Value, s.Heap)
	v = v.SmallStep(value)

	return &State{Heap: s.Heap.ClearReplacements(), Value: v, Type: s.Type}, nil
}

// Assume implements spec §4.5 "assume(expr, src, dest)" restricted to
// the domain-facing half: which CFG edge this corresponds to is the
// caller's (cfg package's) concern.
func (s *State) Assume(expr symbolic.Expr, branch bool) *State {
	rewritten := s.Heap.Rewrite(expr)
	value, err := collapse(rewritten)
	if err != nil {
		// An unrepresentable guard is sound to treat as "no new info"
		// (spec §7, "on unrepresentable input they may return Top").
		return s
	}
	return &State{Heap: s.Heap, Value: s.Value.Assume(value, branch), Type: s.Type}
}

// Satisfies implements spec §4.5 "satisfies(expr, pp) -> {TRUE, FALSE,
// UNKNOWN}".
func (s *State) Satisfies(expr symbolic.Expr, pp source.CodeLocation) domain.Satisfaction {
	rewritten := s.Heap.Rewrite(expr)
	value, err := collapse(rewritten)
	if err != nil {
		return domain.Unknown
	}
	return s.Value.Satisfies(value)
}

// ForgetIdentifier drops id from every component.
func (s *State) ForgetIdentifier(id symbolic.Identifier) *State {
	return &State{
		Heap:  s.Heap,
		Value: s.Value.ForgetIdentifier(id),
		Type:  s.Type.ForgetIdentifier(id),
	}
}

// ForgetIdentifiersIf drops every identifier satisfying pred from
// every component.
func (s *State) ForgetIdentifiersIf(pred func(name string) bool) *State {
	return &State{
		Heap:  s.Heap,
		Value: s.Value.ForgetIdentifiersIf(pred),
		Type:  s.Type.ForgetIdentifiersIf(pred),
	}
}

// PushScope/PopScope delegate to the value and type domains; the heap
// environment is flat and unaffected (spec §4.3, heap keys are plain
// identifier names).
func (s *State) PushScope(token symbolic.ScopeToken) *State {
	return &State{Heap: s.Heap, Value: s.Value.PushScope(token), Type: s.Type.PushScope(token)}
}

func (s *State) PopScope(token symbolic.ScopeToken) *State {
	return &State{Heap: s.Heap, Value: s.Value.PopScope(token), Type: s.Type.PopScope(token)}
}

func applyHeapReplacements(v domain.Value, h *heap.Heap) domain.Value {
	for _, sub := range h.PendingReplacements() {
		if sub.Identity() {
			continue
		}
		v = v.ApplyReplacement(sub.Sources, sub.Targets)
	}
	return v
}

// collapse picks the representative value-level expression out of a
// (possibly multi-valued) rewrite, mirroring symbolic.Rewriter's own
// rewriteOne collapsing rule; an empty set is a rewriting failure
// (spec §7, "rewriting did not yield an identifier for an assign").
func collapse(exprs symbolic.Set) (symbolic.Expr, error) {
	if only := exprs.Only(); only != nil {
		return only, nil
	}
	if len(exprs) == 0 {
		return nil, errEmptyRewrite
	}
	return exprs.Slice()[0], nil
}

var errEmptyRewrite = &emptyRewriteError{}

type emptyRewriteError struct{}

func (*emptyRewriteError) Error() string { return "rewriting produced no candidate expression" }
