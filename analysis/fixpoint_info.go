package analysis

import "absint/lattice"

// FixpointInfo is the auxiliary info map-lattice attached to an
// analysis state (spec §4.6): a map from string key to lattice element,
// itself ordered pointwise like env.Environment. Per the Open Question
// in spec §9(a), a key explicitly stored with a bottom value is kept
// distinct from an absent key — storeInfo/weakStoreInfo always write
// the key, even when the value is bottom.
type FixpointInfo struct {
	values map[string]lattice.Element
}

// NewFixpointInfo builds an empty info map.
func NewFixpointInfo() *FixpointInfo {
	return &FixpointInfo{values: map[string]lattice.Element{}}
}

// Get returns the element stored for key and whether it was present at
// all (as opposed to merely having no recorded value).
func (f *FixpointInfo) Get(key string) (lattice.Element, bool) {
	v, ok := f.values[key]
	return v, ok
}

// StoreInfo implements spec §4.6 "storeInfo(key, lattice)": a strong
// (overwriting) update, present even for a bottom value.
func (f *FixpointInfo) StoreInfo(key string, value lattice.Element) *FixpointInfo {
	out := f.clone()
	out.values[key] = value
	return out
}

// WeakStoreInfo implements spec §4.6 "weakStoreInfo(key, lattice)": a
// joining update against whatever (if anything) is already stored.
func (f *FixpointInfo) WeakStoreInfo(key string, value lattice.Element) *FixpointInfo {
	out := f.clone()
	if existing, ok := out.values[key]; ok {
		out.values[key] = existing.Join(value)
	} else {
		out.values[key] = value
	}
	return out
}

func (f *FixpointInfo) clone() *FixpointInfo {
	values := make(map[string]lattice.Element, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return &FixpointInfo{values: values}
}

func (f *FixpointInfo) Leq(other *FixpointInfo) bool {
	for k, v := range f.values {
		ov, ok := other.values[k]
		if !ok {
			return false
		}
		if !v.Leq(ov) {
			return false
		}
	}
	return true
}

func (f *FixpointInfo) Equal(other *FixpointInfo) bool {
	return f.Leq(other) && other.Leq(f)
}

func (f *FixpointInfo) Join(other *FixpointInfo) *FixpointInfo {
	return f.combine(other, func(a, b lattice.Element) lattice.Element { return a.Join(b) })
}

func (f *FixpointInfo) Meet(other *FixpointInfo) *FixpointInfo {
	return f.combine(other, func(a, b lattice.Element) lattice.Element { return a.Meet(b) })
}

func (f *FixpointInfo) Widen(other *FixpointInfo) *FixpointInfo {
	return f.combine(other, func(a, b lattice.Element) lattice.Element { return a.Widen(b) })
}

func (f *FixpointInfo) Narrow(other *FixpointInfo) *FixpointInfo {
	return f.combine(other, func(a, b lattice.Element) lattice.Element { return a.Narrow(b) })
}

func (f *FixpointInfo) combine(other *FixpointInfo, op func(a, b lattice.Element) lattice.Element) *FixpointInfo {
	out := NewFixpointInfo()
	for k, v := range f.values {
		if ov, ok := other.values[k]; ok {
			out.values[k] = op(v, ov)
		} else {
			out.values[k] = v
		}
	}
	for k, v := range other.values {
		if _, ok := f.values[k]; !ok {
			out.values[k] = v
		}
	}
	return out
}
