// Package sparse provides a sparse set of state IDs with O(1) insert,
// membership test, and clear. It backs epsilon-closure computation during
// NFA-to-DFA subset construction, where the universe of possible values
// (NFA state IDs) is known ahead of time and bounded.
package sparse

import "sort"

// Set is a set of uint32 values (state IDs) supporting O(1) operations.
// It maintains a sparse array (value -> index in dense, for membership) and
// a dense array (the actual values, for iteration). Grounded on the
// classic sparse/dense double-array technique: membership of value v holds
// iff sparse[v] < size && dense[sparse[v]] == v, which lets Clear reset in
// O(1) without zeroing sparse.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// New creates a Set whose universe is [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. A no-op if already present or out of the
// configured universe.
func (s *Set) Insert(value uint32) {
	if value >= uint32(len(s.sparse)) || s.Contains(value) {
		return
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements currently in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// Values returns the set's elements in insertion order. The returned slice
// aliases internal storage and is only valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}

// Sorted returns a freshly allocated, ascending-sorted copy of the set's
// elements. Used to canonicalize an NFA state set into a stable key when
// two DFA states must be recognized as equivalent regardless of discovery
// order (subset construction's state-merging requirement).
func (s *Set) Sorted() []uint32 {
	out := make([]uint32, s.size)
	copy(out, s.dense[:s.size])
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
