package picker

// Selection is an ordered set of identifiers. Insertion order is kept for
// display and an identifier appears at most once.
type Selection struct {
	items []string
	index map[string]int
}

// NewSelection returns a selection seeded with ids, duplicates dropped.
func NewSelection(ids ...string) *Selection {
	s := &Selection{index: make(map[string]int)}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id. It reports false when id was already present.
func (s *Selection) Add(id string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, id)
	return true
}

// Remove deletes id. It reports false when id was not present.
func (s *Selection) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
	return true
}

func (s *Selection) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Items returns a copy of the members in insertion order.
func (s *Selection) Items() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.items...)
}

func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
