package table

import "fmt"

// State is a decoded state record header.
// It is a view into the table; its transitions are decoded on demand.
type State struct {
	// Offset is the cell offset of the record.
	Offset int

	// Accept is the accepted rule id, or -1 when the state does not accept.
	Accept int

	// Anchors are the anchor requirements for accepting in this state.
	// Always AnchorNone for mask-less variants.
	Anchors Anchor

	// NumTransitions is the number of outgoing transition records.
	NumTransitions int

	body int // offset of the first transition record
}

// Accepting reports whether the state accepts a rule.
func (s State) Accepting() bool {
	return s.Accept >= 0
}

// Transition is a decoded transition record header.
type Transition struct {
	// Offset is the cell offset of the record.
	Offset int

	// Dest is the offset of the destination state record.
	Dest int

	// NumRanges is the number of range entries guarding the transition.
	NumRanges int

	ranges int // offset of the first range entry
	width  int // cells per range entry
}

// End returns the offset just past the last range entry, which is where the
// next transition record (or state record) begins. Skipping the remaining
// entries of a transition is a single jump to End.
func (tr Transition) End() int {
	return tr.ranges + tr.NumRanges*tr.width
}

// TransitionIter walks the transition records of one state in declaration
// order.
type TransitionIter struct {
	t    *Table
	pos  int
	left int
}

// State decodes the state record at off.
//
// Panics if off does not leave room for a state header. Offsets taken from
// a validated table's transitions always do.
func (t *Table) State(off int) State {
	h := t.variant.headerLen()
	if off < 0 || off+h > len(t.cells) {
		panic(fmt.Sprintf("table: state offset %d out of range (table has %d cells)", off, len(t.cells)))
	}
	c := t.cells[off : off+h]
	s := State{
		Offset: off,
		Accept: int(c[0]),
		body:   off + h,
	}
	if t.variant.HasMask() {
		s.Anchors = Anchor(c[1])
		s.NumTransitions = int(c[2])
	} else {
		s.NumTransitions = int(c[1])
	}
	return s
}

// Transitions returns an iterator over the transitions of s.
func (t *Table) Transitions(s State) TransitionIter {
	return TransitionIter{t: t, pos: s.body, left: s.NumTransitions}
}

// Next decodes the next transition record.
// The second result is false once all transitions have been returned.
func (it *TransitionIter) Next() (Transition, bool) {
	if it.left <= 0 {
		return Transition{}, false
	}
	it.left--
	c := it.t.cells
	tr := Transition{
		Offset:    it.pos,
		Dest:      int(c[it.pos]),
		NumRanges: int(c[it.pos+1]),
		ranges:    it.pos + 2,
		width:     it.t.variant.entryLen(),
	}
	it.pos = tr.End()
	return tr, true
}

// Range decodes range entry i of tr. Single-value entries are returned as
// Min == Max.
func (t *Table) Range(tr Transition, i int) Range {
	p := tr.ranges + i*tr.width
	if tr.width == 1 {
		v := t.cells[p]
		return Range{Min: v, Max: v}
	}
	return Range{Min: t.cells[p], Max: t.cells[p+1]}
}
