package domain

import "encoding/json/v2"

// StringSet is an ordered set of strings: membership is unique, iteration
// follows insertion order. It serializes as a plain JSON array so API
// clients see an ordered sequence, not a set representation.
type StringSet struct {
	items []string
	index map[string]struct{}
}

// NewStringSet creates an empty set.
func NewStringSet() *StringSet {
	return &StringSet{index: make(map[string]struct{})}
}

// Add inserts v if not already present. Returns true if the set changed.
func (s *StringSet) Add(v string) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *StringSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of elements.
func (s *StringSet) Len() int {
	return len(s.items)
}

// Values returns the elements in insertion order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *StringSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// MarshalJSON serializes the set as a JSON array in insertion order.
func (s *StringSet) MarshalJSON() ([]byte, error) {
	if s == nil || s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON restores the set from a JSON array, preserving order and
// dropping duplicates.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	s.items = nil
	s.index = make(map[string]struct{}, len(items))
	for _, v := range items {
		s.Add(v)
	}
	return nil
}
