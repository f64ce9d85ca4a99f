package table

import (
	"cmp"
	"slices"

	"github.com/coregx/lexdfa/internal/conv"
)

// StateID identifies a state added to a Builder. The first state added is
// the root and is laid out at offset 0.
type StateID int

// Builder assembles a table from explicit states and transitions.
//
// It performs no automaton construction: callers describe the finished DFA
// and the builder lays it out in the requested variant, sorting ranges,
// expanding multi-value ranges for single-value variants and resolving
// destination offsets.
//
// Example:
//
//	b := table.NewBuilder(table.RangedMask)
//	root := b.AddState(-1, table.AnchorNone)
//	word := b.AddState(0, table.AnchorNone)
//	b.AddTransition(root, word, table.Span('a', 'z'))
//	b.AddTransition(word, word, table.Span('a', 'z'))
//	t, err := b.Build()
type Builder struct {
	variant Variant
	states  []builderState
	err     error
}

type builderState struct {
	accept int
	mask   Anchor
	edges  []builderEdge
}

type builderEdge struct {
	to     StateID
	ranges []Range
}

// NewBuilder creates a builder emitting variant v.
func NewBuilder(v Variant) *Builder {
	b := &Builder{variant: v}
	if !v.valid() {
		b.err = ErrUnknownVariant
	}
	return b
}

// AddState appends a state accepting rule accept (-1 for none) under the
// anchor requirements mask.
func (b *Builder) AddState(accept int, mask Anchor) StateID {
	if b.err == nil {
		switch {
		case accept < -1:
			b.err = errorf(BadAccept, -1, "state %d: accept id %d", len(b.states), accept)
		case mask&^anchorAll != 0:
			b.err = errorf(BadMask, -1, "state %d: anchor mask %d", len(b.states), mask)
		case mask != AnchorNone && !b.variant.HasMask():
			b.err = errorf(BadMask, -1, "state %d: variant %s cannot carry anchor mask %s", len(b.states), b.variant, mask)
		}
	}
	b.states = append(b.states, builderState{accept: accept, mask: mask})
	return StateID(len(b.states) - 1)
}

// AddTransition appends a transition from one state to another guarded by
// ranges. Transitions keep the order in which they are added.
func (b *Builder) AddTransition(from, to StateID, ranges ...Range) {
	if b.err != nil {
		return
	}
	if !b.has(from) || !b.has(to) {
		b.err = errorf(BadDest, -1, "transition %d -> %d references an unknown state", from, to)
		return
	}
	rs := slices.Clone(ranges)
	slices.SortFunc(rs, func(x, y Range) int { return cmp.Compare(x.Min, y.Min) })
	if !b.variant.IsRanged() {
		rs = expandSingles(rs)
	}
	b.states[from].edges = append(b.states[from].edges, builderEdge{to: to, ranges: rs})
}

func (b *Builder) has(id StateID) bool {
	return id >= 0 && int(id) < len(b.states)
}

// Build lays out the states and validates the result.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.states) == 0 {
		return nil, errorf(Truncated, 0, "builder has no states")
	}

	h := b.variant.headerLen()
	w := b.variant.entryLen()
	offsets := make([]int, len(b.states))
	size := 0
	for i, s := range b.states {
		offsets[i] = size
		size += h
		for _, e := range s.edges {
			size += 2 + len(e.ranges)*w
		}
	}

	cells := make([]int32, 0, size)
	for _, s := range b.states {
		cells = append(cells, conv.IntToInt32(s.accept))
		if b.variant.HasMask() {
			cells = append(cells, int32(s.mask))
		}
		cells = append(cells, conv.IntToInt32(len(s.edges)))
		for _, e := range s.edges {
			cells = append(cells, conv.IntToInt32(offsets[e.to]), conv.IntToInt32(len(e.ranges)))
			for _, r := range e.ranges {
				if w == 2 {
					cells = append(cells, r.Min, r.Max)
				} else {
					cells = append(cells, r.Min)
				}
			}
		}
	}
	return New(b.variant, cells)
}

// Offset returns the cell offset state id will have in the built table.
func (b *Builder) Offset(id StateID) int {
	h := b.variant.headerLen()
	w := b.variant.entryLen()
	off := 0
	for _, s := range b.states[:id] {
		off += h
		for _, e := range s.edges {
			off += 2 + len(e.ranges)*w
		}
	}
	return off
}

// expandSingles rewrites byte ranges as one entry per value. Empty ranges are
// dropped; pseudo-symbols are kept as they are.
func expandSingles(rs []Range) []Range {
	out := make([]Range, 0, len(rs))
	for _, r := range rs {
		if r.IsPseudo() || r.Min == r.Max {
			out = append(out, r)
			continue
		}
		for v := r.Min; v <= r.Max; v++ {
			out = append(out, Range{Min: v, Max: v})
		}
	}
	return out
}
