// Package sparse provides a sparse set of table offsets.
//
// The table validator walks state records sequentially and records the
// offset of every record boundary; destination offsets embedded in
// transitions are then checked against the set in O(1) without sorting or
// hashing. The universe of values is the table length, known up front.
package sparse

// OffsetSet is a set of non-negative offsets below a fixed capacity.
// It keeps a sparse array for membership and a dense array that preserves
// insertion order for iteration.
type OffsetSet struct {
	sparse []uint32 // offset -> index in dense
	dense  []uint32 // inserted offsets, insertion order
}

// NewOffsetSet creates a set able to hold offsets in [0, capacity).
func NewOffsetSet(capacity int) *OffsetSet {
	if capacity < 0 {
		capacity = 0
	}
	return &OffsetSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, 16),
	}
}

// Insert adds off to the set and reports whether it was newly added.
// Panics if off is outside [0, capacity).
func (s *OffsetSet) Insert(off int) bool {
	if s.Contains(off) {
		return false
	}
	if off < 0 || off >= len(s.sparse) {
		panic("sparse: offset out of range")
	}
	//nolint:gosec // G115: off < len(sparse) <= MaxInt32 for any table
	s.sparse[off] = uint32(len(s.dense))
	//nolint:gosec // G115: checked above
	s.dense = append(s.dense, uint32(off))
	return true
}

// Contains reports whether off is in the set.
// Offsets outside the capacity are never contained.
func (s *OffsetSet) Contains(off int) bool {
	if off < 0 || off >= len(s.sparse) {
		return false
	}
	idx := s.sparse[off]
	return int(idx) < len(s.dense) && int(s.dense[idx]) == off
}

// Len returns the number of offsets in the set.
func (s *OffsetSet) Len() int {
	return len(s.dense)
}

// Clear removes all offsets in O(1).
func (s *OffsetSet) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the offsets in insertion order.
// The returned slice is valid until the next mutation.
func (s *OffsetSet) Values() []uint32 {
	return s.dense
}
