package state

// IsTop reports whether every component is top.
func (s *State) IsTop() bool {
	return s.Value.IsTop() && s.Type.IsTop()
}

// IsBottom reports whether the value domain (the component that
// determines reachability) is bottom.
func (s *State) IsBottom() bool {
	return s.Value.IsBottom()
}

// Leq orders heap first, then value, then type, matching the
// dependency order of spec §4.5.
func (s *State) Leq(other *State) bool {
	return s.Heap.Leq(other.Heap) && s.Value.Leq(other.Value) && s.Type.Leq(other.Type)
}

func (s *State) Equal(other *State) bool {
	return s.Leq(other) && other.Leq(s)
}

func (s *State) Join(other *State) *State {
	return &State{
		Heap:  s.Heap.Join(other.Heap),
		Value: s.Value.Join(other.Value),
		Type:  s.Type.Join(other.Type),
	}
}

func (s *State) Meet(other *State) *State {
	return &State{
		Heap:  s.Heap.Join(other.Heap),
		Value: s.Value.Meet(other.Value),
		Type:  s.Type.Meet(other.Type),
	}
}

// Widen widens value and type pointwise; the heap's own Widen is LUB
// (spec §4.4, finite allocation-site set).
func (s *State) Widen(other *State) *State {
	return &State{
		Heap:  s.Heap.Widen(other.Heap),
		Value: s.Value.Widen(other.Value),
		Type:  s.Type.Widen(other.Type),
	}
}

func (s *State) Narrow(other *State) *State {
	return &State{
		Heap:  s.Heap.Join(other.Heap),
		Value: s.Value.Narrow(other.Value),
		Type:  s.Type.Narrow(other.Type),
	}
}
