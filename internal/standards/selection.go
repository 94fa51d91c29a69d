package standards

// Selection is the ordered list of chosen standards, unique by value with
// insertion order preserved for display.
type Selection struct {
	items []string
	seen  map[string]bool
}

// NewSelection builds a selection from persisted items, dropping duplicates
// while keeping first-occurrence order.
func NewSelection(items []string) *Selection {
	s := &Selection{seen: map[string]bool{}}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends a standard. Adding an already-selected value is a no-op.
func (s *Selection) Add(std string) {
	if std == "" || s.seen[std] {
		return
	}
	s.seen[std] = true
	s.items = append(s.items, std)
}

// Remove drops a standard. Removing an absent value is a no-op.
func (s *Selection) Remove(std string) {
	if !s.seen[std] {
		return
	}
	delete(s.seen, std)
	for i, it := range s.items {
		if it == std {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Has reports whether std is currently selected.
func (s *Selection) Has(std string) bool {
	return s.seen[std]
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = nil
	s.seen = map[string]bool{}
}

// Items returns a copy of the selection in display order.
func (s *Selection) Items() []string {
	return append([]string(nil), s.items...)
}

// Len returns the number of selected standards.
func (s *Selection) Len() int {
	return len(s.items)
}
