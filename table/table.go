// Package table implements the flat DFA table format consumed by the lexer
// runtime.
//
// A table is an immutable sequence of signed 32-bit cells holding every state
// of one compiled automaton, laid out back to back. Transitions refer to their
// destination by absolute cell offset, so the table is an arena of records
// rather than a graph of objects:
//
//	state:      accept_id [anchor_mask] transition_count transition...
//	transition: dest_offset range_count range...
//	range:      min max   (ranged variants)
//	            v         (single-value variants)
//
// accept_id is -1 for non-accepting states. anchor_mask bit 0 requires
// start-of-line and bit 1 requires end-of-line for the state to accept.
// Ranges within a transition are sorted ascending and do not overlap.
// Two negative pseudo-symbols (StartAnchorSymbol, EndAnchorSymbol) encode
// zero-width line anchors as transitions.
//
// The canonical encoding is RangedMask. The other three variants are read
// bit-for-bit for compatibility with existing producers.
//
// Decoding is a pure function of offset and variant: nothing is cached and
// nothing is allocated. A *Table obtained from New has been validated, so
// decoding any offset reachable through its transitions cannot fault.
package table

import (
	"fmt"
	"slices"

	"github.com/coregx/lexdfa/internal/conv"
)

// Variant identifies one of the four cell encodings of a table.
type Variant uint8

const (
	// RangedMask stores an anchor mask per state and (min, max) range pairs.
	// This is the canonical encoding.
	RangedMask Variant = iota

	// Ranged stores (min, max) range pairs and no anchor mask.
	Ranged

	// SingleMask stores an anchor mask per state and one cell per value.
	SingleMask

	// Single stores one cell per value and no anchor mask.
	Single

	numVariants
)

var variantNames = [numVariants]string{
	RangedMask: "ranged-mask",
	Ranged:     "ranged",
	SingleMask: "single-mask",
	Single:     "single",
}

// String returns the variant name used by text forms and manifests.
func (v Variant) String() string {
	if v < numVariants {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant parses a variant name as returned by String.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, &Error{Kind: BadVariant, Offset: -1, Message: fmt.Sprintf("unknown table variant %q", s)}
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.valid() {
		return nil, ErrUnknownVariant
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// HasMask reports whether state records carry an anchor mask cell.
func (v Variant) HasMask() bool {
	return v == RangedMask || v == SingleMask
}

// IsRanged reports whether range entries are (min, max) pairs.
func (v Variant) IsRanged() bool {
	return v == RangedMask || v == Ranged
}

func (v Variant) valid() bool {
	return v < numVariants
}

// headerLen is the number of cells in a state header.
func (v Variant) headerLen() int {
	if v.HasMask() {
		return 3
	}
	return 2
}

// entryLen is the number of cells in one range entry.
func (v Variant) entryLen() int {
	if v.IsRanged() {
		return 2
	}
	return 1
}

// Anchor is the per-state anchor requirement mask.
type Anchor uint8

const (
	// AnchorNone means the state accepts unconditionally.
	AnchorNone Anchor = 0

	// AnchorStart requires the cursor to be at the start of a line (^).
	AnchorStart Anchor = 1 << 0

	// AnchorEnd requires the cursor to be at the end of a line ($).
	AnchorEnd Anchor = 1 << 1

	anchorAll = AnchorStart | AnchorEnd
)

// Has reports whether every bit of req is set in a.
func (a Anchor) Has(req Anchor) bool {
	return a&req == req
}

// String returns "^", "$", "^$" or "" for the mask.
func (a Anchor) String() string {
	s := ""
	if a&AnchorStart != 0 {
		s += "^"
	}
	if a&AnchorEnd != 0 {
		s += "$"
	}
	return s
}

// Pseudo-symbols reserved outside the byte range 0-255.
const (
	// StartAnchorSymbol marks a zero-width start-of-line transition.
	StartAnchorSymbol int32 = -2

	// EndAnchorSymbol marks a zero-width end-of-line transition.
	EndAnchorSymbol int32 = -3
)

// Range is an inclusive byte interval guarding a transition, or a
// pseudo-symbol when Min is negative. Single-value entries decode to
// Min == Max. A range with Min > Max is empty and never matches.
type Range struct {
	Min, Max int32
}

// Byte returns a range matching exactly b.
func Byte(b byte) Range {
	return Range{Min: int32(b), Max: int32(b)}
}

// Span returns a range matching every byte in [lo, hi].
func Span(lo, hi byte) Range {
	return Range{Min: int32(lo), Max: int32(hi)}
}

// StartAnchor returns the start-of-line pseudo-symbol range.
func StartAnchor() Range {
	return Range{Min: StartAnchorSymbol, Max: StartAnchorSymbol}
}

// EndAnchor returns the end-of-line pseudo-symbol range.
func EndAnchor() Range {
	return Range{Min: EndAnchorSymbol, Max: EndAnchorSymbol}
}

// IsPseudo reports whether the range is an anchor pseudo-symbol.
func (r Range) IsPseudo() bool {
	return r.Min < 0
}

// IsStartAnchor reports whether the range is the ^ pseudo-symbol.
func (r Range) IsStartAnchor() bool {
	return r.Min == StartAnchorSymbol
}

// IsEndAnchor reports whether the range is the $ pseudo-symbol.
func (r Range) IsEndAnchor() bool {
	return r.Min == EndAnchorSymbol
}

// IsEmpty reports whether the range can never match.
func (r Range) IsEmpty() bool {
	return r.Min > r.Max
}

// Contains reports whether the byte value c falls within the range.
func (r Range) Contains(c int32) bool {
	return r.Min <= c && c <= r.Max
}

func (r Range) String() string {
	switch {
	case r.IsStartAnchor():
		return "^"
	case r.IsEndAnchor():
		return "$"
	case r.Min == r.Max:
		return fmt.Sprintf("%d", r.Min)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}

// Table is a validated, immutable DFA table.
//
// A Table is safe for concurrent use by any number of matchers.
type Table struct {
	variant Variant
	cells   []int32
}

// New validates cells under variant v and returns a Table owning a private
// copy of them.
func New(v Variant, cells []int32) (*Table, error) {
	if err := Validate(v, cells); err != nil {
		return nil, err
	}
	return &Table{variant: v, cells: slices.Clone(cells)}, nil
}

// FromInts is New for tables held as []int, such as arrays pasted from
// generated C sources. Panics if a cell does not fit in int32.
func FromInts(v Variant, cells []int) (*Table, error) {
	narrow := make([]int32, len(cells))
	for i, c := range cells {
		narrow[i] = conv.IntToInt32(c)
	}
	return New(v, narrow)
}

// MustNew is like New but panics if the cells do not validate.
// It simplifies initialization of tables embedded as Go literals.
func MustNew(v Variant, cells []int32) *Table {
	t, err := New(v, cells)
	if err != nil {
		panic("table: MustNew: " + err.Error())
	}
	return t
}

// Variant returns the encoding of the table.
func (t *Table) Variant() Variant {
	return t.variant
}

// Len returns the number of cells in the table.
func (t *Table) Len() int {
	return len(t.cells)
}

// Cells returns a copy of the raw cells.
func (t *Table) Cells() []int32 {
	return slices.Clone(t.cells)
}

// NumStates returns the number of state records in the table.
func (t *Table) NumStates() int {
	n := 0
	t.EachState(func(State) { n++ })
	return n
}

// EachState calls fn for every state record in layout order.
func (t *Table) EachState(fn func(State)) {
	for off := 0; off < len(t.cells); {
		s := t.State(off)
		fn(s)
		off = t.stateEnd(s)
	}
}

// stateEnd returns the offset just past the last transition of s.
func (t *Table) stateEnd(s State) int {
	end := s.body
	it := t.Transitions(s)
	for tr, ok := it.Next(); ok; tr, ok = it.Next() {
		end = tr.End()
	}
	return end
}
