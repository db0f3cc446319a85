// Package source carries the minimal location information the engine needs
// from a frontend: a program point identifies where in source text an
// expression or statement originated, without the engine knowing anything
// about the language that produced it.
package source

import "fmt"

// Position is a single point in a source file, 1-indexed like most
// compilers report them to humans.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether the position was actually set by a frontend,
// as opposed to being the zero value used by synthetic nodes.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// CodeLocation is the identity a program point contributes to an
// AllocationSite: two allocations at the same CodeLocation collapse under
// the replacement rules in the heap domain (spec §3, "Allocation site").
type CodeLocation struct {
	Position
	// Ordinal disambiguates multiple allocation expressions that share a
	// position, e.g. two `new T` calls folded onto one line by a frontend.
	Ordinal int
}

func (c CodeLocation) String() string {
	if c.Ordinal == 0 {
		return c.Position.String()
	}
	return fmt.Sprintf("%s#%d", c.Position.String(), c.Ordinal)
}
