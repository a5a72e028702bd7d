package typeahead

// SelectionSet is an insertion-ordered set of picked options.
// The zero value is an empty set ready to use. It is not safe for concurrent use.
type SelectionSet struct {
	items []string
	index map[string]int
}

// NewSelectionSet returns a set holding items in order, skipping repeats.
func NewSelectionSet(items ...string) *SelectionSet {
	s := &SelectionSet{}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends item if it is not present and reports whether the set changed.
func (s *SelectionSet) Add(item string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = len(s.items)
	s.items = append(s.items, item)
	return true
}

// Remove deletes item and reports whether it was present.
func (s *SelectionSet) Remove(item string) bool {
	i, ok := s.index[item]
	if !ok {
		return false
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, item)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Has reports whether item is in the set.
func (s *SelectionSet) Has(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Items returns the selected options in first-insertion order.
func (s *SelectionSet) Items() []string {
	items := make([]string, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of selected options.
func (s *SelectionSet) Len() int {
	return len(s.items)
}
