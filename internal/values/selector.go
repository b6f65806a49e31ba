// Package values tracks which core values the user has selected.
package values

// Selector is a set of selected core value names. Names match exactly and
// case-sensitively. The zero value is an empty selection.
type Selector struct {
	order []string
	set   map[string]struct{}
}

// NewSelector returns a selector holding names, duplicates dropped.
func NewSelector(names ...string) *Selector {
	s := &Selector{}
	s.Set(names...)
	return s
}

// Toggle removes name if selected and adds it otherwise. It reports whether
// name is selected afterwards.
func (s *Selector) Toggle(name string) bool {
	if s.Has(name) {
		s.remove(name)
		return false
	}
	s.add(name)
	return true
}

// Has reports whether name is selected.
func (s *Selector) Has(name string) bool {
	_, ok := s.set[name]
	return ok
}

// Len returns the number of selected values.
func (s *Selector) Len() int {
	return len(s.order)
}

// Empty reports whether nothing is selected.
func (s *Selector) Empty() bool {
	return len(s.order) == 0
}

// Selected returns the selected names in the order they were added.
func (s *Selector) Selected() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the selection.
func (s *Selector) Clear() {
	s.order = nil
	s.set = nil
}

// Set replaces the selection with names.
func (s *Selector) Set(names ...string) {
	s.Clear()
	for _, n := range names {
		if !s.Has(n) {
			s.add(n)
		}
	}
}

// Retain drops selected names that are not in known, e.g. after a value was
// deleted on the backend.
func (s *Selector) Retain(known []string) {
	keep := make(map[string]struct{}, len(known))
	for _, k := range known {
		keep[k] = struct{}{}
	}
	for _, n := range s.Selected() {
		if _, ok := keep[n]; !ok {
			s.remove(n)
		}
	}
}

func (s *Selector) add(name string) {
	if s.set == nil {
		s.set = make(map[string]struct{})
	}
	s.set[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *Selector) remove(name string) {
	delete(s.set, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
