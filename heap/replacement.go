// Package heap implements the point-based heap abstraction (spec §4.4,
// C4): a map from identifiers to sets of allocation sites, plus a trail
// of pending replacements that the composite state threads into the
// value domain.
package heap

import (
	"fmt"
	"sort"

	"absint/symbolic"
)

// Replacement is a declarative renaming/weakening of identifiers
// propagated across domains (spec §3, "HeapReplacement"): every
// occurrence of a source identifier in downstream abstract values must
// be substituted by the join of the targets' images. Identity holds
// when sources equal targets.
type Replacement struct {
	Sources []symbolic.Identifier
	Targets []symbolic.Identifier
}

// Identity reports whether this replacement changes nothing.
func (r Replacement) Identity() bool {
	if len(r.Sources) != len(r.Targets) {
		return false
	}
	for i := range r.Sources {
		if r.Sources[i].Name() != r.Targets[i].Name() || r.Sources[i].Weak() != r.Targets[i].Weak() {
			return false
		}
	}
	return true
}

func (r Replacement) String() string {
	return fmt.Sprintf("%s -> %s", names(r.Sources), names(r.Targets))
}

func names(ids []symbolic.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name()
	}
	sort.Strings(out)
	return out
}

// StrongToWeak builds the replacement recorded when a previously strong
// allocation site is revisited (spec §4.4 rule 2): the site maps to its
// own weakened form.
func StrongToWeak(site *symbolic.AllocationSite) Replacement {
	weak := site.Weaken()
	return Replacement{
		Sources: []symbolic.Identifier{site},
		Targets: []symbolic.Identifier{weak},
	}
}
