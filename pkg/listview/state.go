// Package listview maps between the flat row space a list renderer iterates
// and the two-level group/item hierarchy of a grouped record list.
package listview

// State tracks per-group fold flags. A group with no entry is expanded.
type State struct {
	Expanded map[int]bool
}

// NewState creates a State with an initialized flag map.
func NewState() *State {
	return &State{Expanded: make(map[int]bool)}
}

func (s *State) ensure() {
	if s.Expanded == nil {
		s.Expanded = make(map[int]bool)
	}
}

// IsExpanded returns the stored flag for groupID, or true if it is unset.
func (s *State) IsExpanded(groupID int) bool {
	if s == nil {
		return true
	}
	expanded, ok := s.Expanded[groupID]
	if !ok {
		return true
	}
	return expanded
}

// Toggle flips the flag for groupID and returns the new value.
func (s *State) Toggle(groupID int) bool {
	s.ensure()
	next := !s.IsExpanded(groupID)
	s.Expanded[groupID] = next
	return next
}

// SetExpanded stores an explicit flag for groupID.
func (s *State) SetExpanded(groupID int, expanded bool) {
	s.ensure()
	s.Expanded[groupID] = expanded
}

// EnsureTracked materializes every unseen group id as expanded. Ids already
// tracked keep their flag.
func (s *State) EnsureTracked(groupIDs []int) {
	s.ensure()
	for _, id := range groupIDs {
		if _, ok := s.Expanded[id]; !ok {
			s.Expanded[id] = true
		}
	}
}

// Tracked reports whether groupID has a materialized flag.
func (s *State) Tracked(groupID int) bool {
	if s == nil {
		return false
	}
	_, ok := s.Expanded[groupID]
	return ok
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	out := NewState()
	if s == nil {
		return out
	}
	for k, v := range s.Expanded {
		out.Expanded[k] = v
	}
	return out
}
