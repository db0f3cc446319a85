// Package lattice defines the capability every abstract domain in the
// engine must implement (spec §4.1, C1). Rather than a deep class
// hierarchy, domains implement this one small interface; composite domains
// (env, heap, state) build larger lattices out of smaller ones by holding
// them as fields, not by subclassing.
package lattice

// Element is the capability a lattice value exposes. Implementations must
// be immutable: every operation returns a fresh value and never mutates
// the receiver or argument in place, so that a single element can be
// safely reused across the many join/widen calls a fixpoint performs.
//
// Invariants (spec §3, §8):
//
//	Bottom() <= x <= Top()                 for every x
//	x.Join(y) is the least upper bound      of x and y
//	x.Meet(y) is the greatest lower bound   of x and y
//	x.Widen(y) >= x.Join(y)                 and guarantees chain termination
//	x.Equal(y) iff x.Leq(y) && y.Leq(x)
type Element interface {
	// IsTop reports whether this element is the top of its lattice.
	IsTop() bool
	// IsBottom reports whether this element is the bottom of its lattice.
	IsBottom() bool
	// Leq is the partial order x <= y.
	Leq(other Element) bool
	// Equal reports value equality, which must agree with mutual Leq.
	Equal(other Element) bool

	// Join computes the least upper bound x ⊔ y.
	Join(other Element) Element
	// Meet computes the greatest lower bound x ⊓ y.
	Meet(other Element) Element
	// Widen computes x ∇ y, an upper bound of Join that guarantees
	// termination on ascending chains (spec §8, property 5 and 6).
	Widen(other Element) Element
	// Narrow computes x Δ y, refining a post-widening result. Narrow is
	// only meaningful when y <= x; callers that violate this should expect
	// an over-approximation back, never a panic.
	Narrow(other Element) Element
}

// Factory produces the two distinguished elements of a lattice. Domains
// expose a Factory instead of package-level constructors so the engine can
// be configured with a user's domain without it being a global singleton
// (Design Notes, "Global factory state").
type Factory interface {
	Top() Element
	Bottom() Element
}

// Error reports an internal invariant violation inside a lattice
// operation. Per spec §4.1/§7, domain operations must never return Error
// for ordinary, representable inputs; they should soundly return Top
// instead. Error is reserved for implementation bugs (e.g. joining two
// elements from different concrete domains).
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string { return "lattice error in " + e.Op + ": " + e.Message }

// NewError builds a lattice Error for the named operation.
func NewError(op, message string) *Error {
	return &Error{Op: op, Message: message}
}

// Leq3Equal is a small helper implementing antisymmetric equality (spec §8,
// property 2) in terms of Leq, for domains whose Equal is easiest to
// define that way.
func Leq3Equal(a, b Element) bool {
	return a.Leq(b) && b.Leq(a)
}
