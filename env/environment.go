// Package env implements the pointwise map-lattice from identifiers to a
// non-relational element domain (spec §4.3, C3), used both as the value
// environment inside the composite abstract state and as the backing
// store for the heap domain's location map.
package env

import (
	"absint/lattice"
	"absint/symbolic"
)

// Environment is a map-lattice keyed by identifier name, with a sentinel
// "lattice" default for absent keys (spec §3, "Environment"). T is the
// element domain; every stored value must come from the same Factory.
type Environment struct {
	factory lattice.Factory
	top     bool
	bottom  bool
	values  map[string]lattice.Element
}

// New builds an empty, non-top, non-bottom environment over the given
// element factory. An empty environment's GetState returns the factory's
// Bottom for any key, matching "bottom ≡ unreachable".
func New(factory lattice.Factory) *Environment {
	return &Environment{factory: factory, values: map[string]lattice.Element{}}
}

// Top builds the top environment (every key maps to Top).
func Top(factory lattice.Factory) *Environment {
	return &Environment{factory: factory, top: true}
}

// Bottom builds the bottom environment (unreachable).
func Bottom(factory lattice.Factory) *Environment {
	return &Environment{factory: factory, bottom: true}
}

func (e *Environment) IsTop() bool    { return e.top }
func (e *Environment) IsBottom() bool { return e.bottom && !e.top }

// GetState returns the element stored for id, or the lattice default for
// a key absent from this environment (spec §4.3, "getState"): Top if the
// whole environment is Top, Bottom if the whole environment is Bottom,
// otherwise the domain's own Bottom (absent means "nothing known yet").
func (e *Environment) GetState(id symbolic.Identifier) lattice.Element {
	if e.top {
		return e.factory.Top()
	}
	if e.bottom {
		return e.factory.Bottom()
	}
	if v, ok := e.values[id.Name()]; ok {
		return v
	}
	return e.factory.Bottom()
}

// Assign implements spec §4.3 "assign": strong if the identifier is
// strong, otherwise joins with the existing value (weak update).
func (e *Environment) Assign(id symbolic.Identifier, value lattice.Element) *Environment {
	out := e.clone()
	if id.Weak() {
		out.values[id.Name()] = out.GetState(id).Join(value)
	} else {
		out.values[id.Name()] = value
	}
	return out
}

// Forget removes id's binding entirely.
func (e *Environment) Forget(id symbolic.Identifier) *Environment {
	out := e.clone()
	delete(out.values, id.Name())
	return out
}

// ForgetIf removes every key satisfying pred.
func (e *Environment) ForgetIf(pred func(name string) bool) *Environment {
	out := e.clone()
	for k := range out.values {
		if pred(k) {
			delete(out.values, k)
		}
	}
	return out
}

// Keys returns the set of identifier names this environment has an
// explicit binding for (not including Top/Bottom's implicit universe).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	return keys
}

func (e *Environment) clone() *Environment {
	if e.top || e.bottom {
		return &Environment{factory: e.factory, values: map[string]lattice.Element{}}
	}
	values := make(map[string]lattice.Element, len(e.values))
	for k, v := range e.values {
		values[k] = v
	}
	return &Environment{factory: e.factory, values: values}
}

// Leq implements the partial order pointwise over the union of keysets
// (spec §4.3 invariant).
func (e *Environment) Leq(other *Environment) bool {
	if e.IsBottom() || other.IsTop() {
		return true
	}
	if e.IsTop() || other.IsBottom() {
		return false
	}
	for _, k := range unionKeys(e, other) {
		if !e.byKey(k).Leq(other.byKey(k)) {
			return false
		}
	}
	return true
}

func (e *Environment) Equal(other *Environment) bool {
	return e.Leq(other) && other.Leq(e)
}

// Join computes the pointwise LUB (spec §4.3, "lub on environments is
// defined for every key present in either").
func (e *Environment) Join(other *Environment) *Environment {
	return e.combine(other, func(a, b lattice.Element) lattice.Element { return a.Join(b) })
}

// Meet computes the pointwise GLB.
func (e *Environment) Meet(other *Environment) *Environment {
	if e.IsBottom() || other.IsBottom() {
		return Bottom(e.factory)
	}
	if e.IsTop() {
		return other
	}
	if other.IsTop() {
		return e
	}
	return e.combine(other, func(a, b lattice.Element) lattice.Element { return a.Meet(b) })
}

// Widen computes the pointwise widening.
func (e *Environment) Widen(other *Environment) *Environment {
	return e.combine(other, func(a, b lattice.Element) lattice.Element { return a.Widen(b) })
}

// Narrow computes the pointwise narrowing.
func (e *Environment) Narrow(other *Environment) *Environment {
	return e.combine(other, func(a, b lattice.Element) lattice.Element { return a.Narrow(b) })
}

func (e *Environment) combine(other *Environment, op func(a, b lattice.Element) lattice.Element) *Environment {
	if e.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return e
	}
	if e.IsTop() || other.IsTop() {
		return Top(e.factory)
	}
	out := New(e.factory)
	for _, k := range unionKeys(e, other) {
		out.values[k] = op(e.byKeyOrBottom(k), other.byKeyOrBottom(k))
	}
	return out
}

func (e *Environment) byKey(k string) lattice.Element {
	return e.byKeyOrBottom(k)
}

func (e *Environment) byKeyOrBottom(k string) lattice.Element {
	if e.top {
		return e.factory.Top()
	}
	if v, ok := e.values[k]; ok {
		return v
	}
	return e.factory.Bottom()
}

// Scopable is implemented by element domains whose values themselves
// reference scoped identifiers (e.g. a domain tracking symbolic
// expressions). PushScope/PopScope delegate to it when present (spec
// §4.3, "Scope push/pop delegates to element"); domains that don't
// reference identifiers internally can skip it entirely.
type Scopable interface {
	Rescope(token symbolic.ScopeToken, push bool) lattice.Element
}

// PushScope rescopes every stored element into token's frame.
func (e *Environment) PushScope(token symbolic.ScopeToken) *Environment {
	return e.rescopeAll(token, true)
}

// PopScope reverses PushScope for the same token.
func (e *Environment) PopScope(token symbolic.ScopeToken) *Environment {
	return e.rescopeAll(token, false)
}

func (e *Environment) rescopeAll(token symbolic.ScopeToken, push bool) *Environment {
	if e.top || e.bottom {
		return e
	}
	out := e.clone()
	for k, v := range out.values {
		if scopable, ok := v.(Scopable); ok {
			out.values[k] = scopable.Rescope(token, push)
		}
	}
	return out
}

func unionKeys(a, b *Environment) []string {
	seen := map[string]struct{}{}
	keys := make([]string, 0, len(a.values)+len(b.values))
	for k := range a.values {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for k := range b.values {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}
