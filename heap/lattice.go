package heap

import "absint/symbolic"

// Leq compares heap environments only; pending substitutions are
// transient and play no part in the order (spec §4.4).
func (h *Heap) Leq(other *Heap) bool {
	for name, sites := range h.env {
		if !siteSetLeq(sites, other.env[name]) {
			return false
		}
	}
	return true
}

func siteSetLeq(a, b []*symbolic.AllocationSite) bool {
	want := map[string]bool{}
	for _, s := range b {
		want[s.Name()] = true
	}
	for _, s := range a {
		if !want[s.Name()] {
			return false
		}
	}
	return true
}

// Equal reports mutual Leq.
func (h *Heap) Equal(other *Heap) bool {
	return h.Leq(other) && other.Leq(h)
}

// Join computes the environment-wise LUB and concatenates the
// substitution trails (spec §4.4, "Join: environment-wise LUB;
// substitutions concatenate").
func (h *Heap) Join(other *Heap) *Heap {
	out := New()
	for name, sites := range h.env {
		out.env[name] = mergeSites(out.env[name], sites)
	}
	for name, sites := range other.env {
		out.env[name] = mergeSites(out.env[name], sites)
	}
	for k, v := range h.sites {
		out.sites[k] = v
	}
	for k, v := range other.sites {
		out.sites[k] = v
	}
	for k, v := range h.seen {
		out.seen[k] = out.seen[k] || v
	}
	for k, v := range other.seen {
		out.seen[k] = out.seen[k] || v
	}
	out.subs = append(append([]Replacement{}, h.subs...), other.subs...)
	return out
}

// Widen is LUB: the allocation-site set of a program is finite, so
// repeated joining alone terminates (spec §4.4).
func (h *Heap) Widen(other *Heap) *Heap {
	return h.Join(other)
}
