package analysis

import (
	"absint/source"
	"absint/symbolic"
)

// Assign advances the composite state through an assignment and
// replaces the expression set with {id} (spec §4.6, "assignment
// returns {id}").
func (a *State) Assign(id symbolic.Identifier, expr symbolic.Expr, pp source.CodeLocation) (*State, error) {
	c, err := a.Composite.Assign(id, expr, pp)
	if err != nil {
		return nil, err
	}
	return &State{Composite: c, Expressions: symbolic.NewSet(id), Info: a.Info}, nil
}

// SmallStep advances the composite state through a non-binding
// evaluation and replaces the expression set with {expr} (spec §4.6,
// "small-step returns {expr}").
func (a *State) SmallStep(expr symbolic.Expr, pp source.CodeLocation) (*State, error) {
	c, err := a.Composite.SmallStepSemantics(expr, pp)
	if err != nil {
		return nil, err
	}
	return &State{Composite: c, Expressions: symbolic.NewSet(expr), Info: a.Info}, nil
}

// Assume restricts the composite state to one branch of a guard and
// preserves the expression set unchanged (spec §4.6, "assume
// preserves").
func (a *State) Assume(expr symbolic.Expr, branch bool) *State {
	return a.WithComposite(a.Composite.Assume(expr, branch))
}

// ForgetIdentifier drops id from every component of the composite
// state.
func (a *State) ForgetIdentifier(id symbolic.Identifier) *State {
	return a.WithComposite(a.Composite.ForgetIdentifier(id))
}

// ForgetIdentifiersIf drops every identifier satisfying pred.
func (a *State) ForgetIdentifiersIf(pred func(name string) bool) *State {
	return a.WithComposite(a.Composite.ForgetIdentifiersIf(pred))
}

// PushScope/PopScope delegate to the composite state, used by the
// interprocedural driver around bindFormals/return-rebinding (spec
// §4.9).
func (a *State) PushScope(token symbolic.ScopeToken) *State {
	return a.WithComposite(a.Composite.PushScope(token))
}

func (a *State) PopScope(token symbolic.ScopeToken) *State {
	return a.WithComposite(a.Composite.PopScope(token))
}
