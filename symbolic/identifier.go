package symbolic

// Identifier is the abstract supertype of variables, heap locations and
// meta-variables (spec §3). Its defining trait is Weak: a strong
// identifier denotes exactly one concrete location and may be
// strong-updated; a weak identifier denotes at least one location and may
// only be joined (spec §3, "Identifier").
type Identifier interface {
	Expr
	// Name is the identifier's stable name, used as a map key by
	// Environment and the heap domain.
	Name() string
	// Weak reports whether this identifier may represent more than one
	// concrete location.
	Weak() bool
	// Weaken returns a copy of this identifier with Weak forced true. Used
	// by the heap domain's strong-to-weak replacement rule (spec §4.4.2).
	Weaken() Identifier
}
