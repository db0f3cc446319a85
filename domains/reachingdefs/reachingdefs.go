// Package reachingdefs is a reference value domain computing reaching
// definitions (spec §8, scenario S3): at each program point, which
// assignment sites could have produced the current value of each
// variable. Unlike constprop/sign/interval, which track an abstraction
// of a variable's value, this domain tracks an abstraction of its
// definition history — the classic dataflow-analysis textbook problem,
// included here to show the engine composes with a non-numeric domain
// just as readily.
package reachingdefs

import (
	"fmt"
	"sort"
	"strings"

	"absint/lattice"
	"absint/symbolic"
)

// Site identifies one assignment statement. Two assignments to the
// same variable at the same source position are still distinct sites
// if they are distinct syntax nodes (a loop body assigning inside two
// different unrolled copies, say); site identity tracks the syntax
// node, not the textual expression.
type Site string

// SiteOf derives the Site for an assignment's right-hand-side
// expression. Exported so a frontend (or a test) can compute the same
// Site a Domain.Assign call will record, to check set membership
// against.
func SiteOf(expr symbolic.Expr) Site {
	return Site(fmt.Sprintf("%p:%T", expr, expr))
}

// DefSet is a finite set of Sites, ordered by subset inclusion: this is
// the powerset lattice over "every site in the program", which has
// finite height, so Widen can simply be Join. top represents "every
// possible site" (e.g. a variable forced unconstrained by an open
// call); it is never produced by Assign, only by the element factory's
// Top().
type DefSet struct {
	top   bool
	sites map[Site]struct{}
}

// Empty is the bottom DefSet (no definitions reach this point).
func Empty() DefSet { return DefSet{} }

// All is the top DefSet.
func All() DefSet { return DefSet{top: true} }

// Single is the DefSet containing exactly one Site.
func Single(s Site) DefSet {
	return DefSet{sites: map[Site]struct{}{s: {}}}
}

func (d DefSet) IsBottom() bool { return !d.top && len(d.sites) == 0 }
func (d DefSet) IsTop() bool    { return d.top }

// Contains reports whether s is a member of this DefSet.
func (d DefSet) Contains(s Site) bool {
	if d.top {
		return true
	}
	_, ok := d.sites[s]
	return ok
}

// Sites returns the set's members, sorted for deterministic output.
func (d DefSet) Sites() []Site {
	out := make([]Site, 0, len(d.sites))
	for s := range d.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d DefSet) Leq(o lattice.Element) bool {
	other := o.(DefSet)
	if other.top {
		return true
	}
	if d.top {
		return false
	}
	for s := range d.sites {
		if !other.Contains(s) {
			return false
		}
	}
	return true
}

func (d DefSet) Equal(o lattice.Element) bool {
	other := o.(DefSet)
	return d.Leq(other) && other.Leq(d)
}

func (d DefSet) Join(o lattice.Element) lattice.Element {
	other := o.(DefSet)
	if d.top || other.top {
		return All()
	}
	out := make(map[Site]struct{}, len(d.sites)+len(other.sites))
	for s := range d.sites {
		out[s] = struct{}{}
	}
	for s := range other.sites {
		out[s] = struct{}{}
	}
	return DefSet{sites: out}
}

func (d DefSet) Meet(o lattice.Element) lattice.Element {
	other := o.(DefSet)
	if d.top {
		return other
	}
	if other.top {
		return d
	}
	out := map[Site]struct{}{}
	for s := range d.sites {
		if other.Contains(s) {
			out[s] = struct{}{}
		}
	}
	return DefSet{sites: out}
}

// Widen is Join: the universe of Sites in a finite program is finite,
// so the ascending chain already terminates without a separate
// widening operator (spec §4.2, "Widen must guarantee ascending-chain
// termination" — here the lattice's own finite height guarantees it).
func (d DefSet) Widen(o lattice.Element) lattice.Element { return d.Join(o) }

// Narrow is Meet: narrowing a finite powerset lattice is exact, no
// iteration bound needed.
func (d DefSet) Narrow(o lattice.Element) lattice.Element { return d.Meet(o) }

func (d DefSet) String() string {
	if d.top {
		return "⊤"
	}
	sites := d.Sites()
	names := make([]string, len(sites))
	for i, s := range sites {
		names[i] = string(s)
	}
	return "{" + strings.Join(names, ", ") + "}"
}
