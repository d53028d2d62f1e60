package domain

import (
	"slices"
)

// SeenSet is the set of listing identifiers that have already been reported.
// The zero value is not usable; create one with NewSeenSet.
type SeenSet map[string]struct{}

// NewSeenSet returns a set holding the given identifiers.
func NewSeenSet(ids ...string) SeenSet {
	s := make(SeenSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of identifiers.
func (s SeenSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s SeenSet) Clone() SeenSet {
	c := make(SeenSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Contains reports whether every identifier of other is also in s.
func (s SeenSet) Contains(other SeenSet) bool {
	for id := range other {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// IDs returns the identifiers in sorted order so serialized documents diff
// cleanly between runs.
func (s SeenSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
