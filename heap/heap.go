package heap

import (
	"absint/source"
	"absint/symbolic"
)

// Heap is the point-based heap domain of spec §4.4: a map from
// identifier name to the set of allocation sites it may point to, plus
// the trail of pending replacements produced by strong-to-weak site
// transitions. It implements symbolic.HeapContext so the Rewriter can
// consult it directly.
type Heap struct {
	env   map[string][]*symbolic.AllocationSite
	sites map[string]*symbolic.AllocationSite
	seen  map[string]bool
	subs  []Replacement
}

// New builds an empty heap: no identifier is tracked, no location has
// been visited yet.
func New() *Heap {
	return &Heap{
		env:   map[string][]*symbolic.AllocationSite{},
		sites: map[string]*symbolic.AllocationSite{},
		seen:  map[string]bool{},
	}
}

func (h *Heap) clone() *Heap {
	env := make(map[string][]*symbolic.AllocationSite, len(h.env))
	for k, v := range h.env {
		cp := make([]*symbolic.AllocationSite, len(v))
		copy(cp, v)
		env[k] = cp
	}
	sites := make(map[string]*symbolic.AllocationSite, len(h.sites))
	for k, v := range h.sites {
		sites[k] = v
	}
	seen := make(map[string]bool, len(h.seen))
	for k, v := range h.seen {
		seen[k] = v
	}
	subs := make([]Replacement, len(h.subs))
	copy(subs, h.subs)
	return &Heap{env: env, sites: sites, seen: seen, subs: subs}
}

// Lookup implements symbolic.HeapContext.
func (h *Heap) Lookup(name string) ([]*symbolic.AllocationSite, bool) {
	sites, ok := h.env[name]
	return sites, ok
}

// SeenAt implements symbolic.HeapContext.
func (h *Heap) SeenAt(loc source.CodeLocation) bool {
	return h.seen[loc.String()]
}

// PendingReplacements returns the replacement trail accumulated since
// the last ClearReplacements (spec §4.5: the composite state threads
// these into the value domain, then discards them).
func (h *Heap) PendingReplacements() []Replacement {
	return h.subs
}

// ClearReplacements drops the replacement trail, returning a heap with
// environment unchanged (spec §4.4, "lessOrEqual compares environments
// only; substitutions are transient").
func (h *Heap) ClearReplacements() *Heap {
	out := h.clone()
	out.subs = nil
	return out
}

// Assign implements spec §4.4 "assign(id, e, pp)": it rewrites e
// through the Rewriter and updates the heap environment according to
// which of the three assign rules applies, returning the updated heap
// and the value-level expression set the value domain should interpret.
func (h *Heap) Assign(id symbolic.Identifier, e symbolic.Expr, pp source.CodeLocation) (*Heap, symbolic.Set) {
	out := h.clone()

	if alloc, ok := e.(*symbolic.HeapAllocation); ok {
		out.seen[alloc.Loc.String()] = true
	}

	rw := symbolic.NewRewriter(out)
	rewritten := rw.Rewrite(e)
	out.registerSites(rewritten)

	if site, ok := id.(*symbolic.AllocationSite); ok {
		// Rule 2: assigning through an allocation site identifier
		// revisits that site, so any prior strong binding must weaken.
		out.subs = append(out.subs, StrongToWeak(site))
		weak := site.Weaken().(*symbolic.AllocationSite)
		out.sites[weak.Name()] = weak
		return out, rewritten
	}

	if ptr, ok := rewritten.Only().(*symbolic.PointerIdentifier); ok {
		// Rule 1: e denotes a pointer, so id's pointer set updates.
		target := out.siteFor(ptr)
		if id.Weak() {
			out.env[id.Name()] = mergeSites(out.env[id.Name()], []*symbolic.AllocationSite{target})
		} else {
			out.env[id.Name()] = []*symbolic.AllocationSite{target}
		}
		return out, rewritten
	}

	// Rule 3: no heap-environment change beyond whatever rewriting did.
	return out, rewritten
}

// SemanticsOf implements spec §4.4 "semanticsOf(heapExpr, pp)": it is
// the identity for every heap form except AccessChild, which recurses
// into the receiver, so an access chain is evaluated at the abstraction
// of its outermost container. The child is a field name, not an
// expression, and is not evaluated.
func (h *Heap) SemanticsOf(e symbolic.Expr, pp source.CodeLocation) symbolic.Expr {
	if access, ok := e.(*symbolic.AccessChild); ok {
		return h.SemanticsOf(access.Receiver, pp)
	}
	return e
}

// Rewrite invokes the Rewriter (spec §4.2) and returns the set of
// value-level expressions for the value domain to interpret.
func (h *Heap) Rewrite(e symbolic.Expr) symbolic.Set {
	rw := symbolic.NewRewriter(h)
	return rw.Rewrite(e)
}

func (h *Heap) registerSites(exprs symbolic.Set) {
	for _, e := range exprs.Slice() {
		if site, ok := e.(*symbolic.AllocationSite); ok {
			h.sites[site.Name()] = site
		}
	}
}

func (h *Heap) siteFor(ptr *symbolic.PointerIdentifier) *symbolic.AllocationSite {
	if site, ok := h.sites[ptr.TargetLocation]; ok {
		return site
	}
	site := &symbolic.AllocationSite{
		Loc:    source.CodeLocation{Position: ptr.At},
		IsWeak: ptr.IsWeak,
	}
	h.sites[ptr.TargetLocation] = site
	return site
}

func mergeSites(existing, added []*symbolic.AllocationSite) []*symbolic.AllocationSite {
	seen := map[string]*symbolic.AllocationSite{}
	for _, s := range existing {
		seen[s.Name()] = s
	}
	for _, s := range added {
		if prior, ok := seen[s.Name()]; ok {
			if prior.IsWeak || s.IsWeak {
				weak := *prior
				weak.IsWeak = true
				seen[s.Name()] = &weak
			}
			continue
		}
		seen[s.Name()] = s
	}
	out := make([]*symbolic.AllocationSite, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	return out
}
