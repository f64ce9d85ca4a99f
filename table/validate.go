package table

import (
	"github.com/coregx/lexdfa/internal/sparse"
)

// maxByte is the largest value a non-pseudo range bound may take.
const maxByte = 255

// detectOrder is the order in which Detect tries variants.
var detectOrder = [...]Variant{RangedMask, SingleMask, Ranged, Single}

// Validate checks that cells form a well-formed table under variant v.
//
// Records are walked in layout order from offset 0. Every header and
// transition must fit in the cells, counts must be non-negative, masks and
// accept ids in range, range values bytes or pseudo-symbols, ranges sorted
// ascending without overlap, every destination a record boundary, and the
// records must cover the cells exactly.
func Validate(v Variant, cells []int32) error {
	if !v.valid() {
		return ErrUnknownVariant
	}
	if len(cells) == 0 {
		return errorf(Truncated, 0, "empty table has no root state")
	}

	h := v.headerLen()
	w := v.entryLen()
	bounds := sparse.NewOffsetSet(len(cells))

	type edge struct{ at, dest int }
	var edges []edge

	pos := 0
	for pos < len(cells) {
		state := pos
		bounds.Insert(state)
		if len(cells)-pos < h {
			return errorf(Truncated, state, "state header needs %d cells, %d left", h, len(cells)-pos)
		}
		if accept := cells[pos]; accept < -1 {
			return errorf(BadAccept, state, "accept id %d", accept)
		}
		if v.HasMask() {
			if m := cells[pos+1]; m < 0 || m > int32(anchorAll) {
				return errorf(BadMask, state, "anchor mask %d", m)
			}
		}
		n := int(cells[pos+h-1])
		if n < 0 {
			return errorf(BadCount, state, "transition count %d", n)
		}
		pos += h

		for i := 0; i < n; i++ {
			at := pos
			if len(cells)-pos < 2 {
				return errorf(Truncated, at, "transition header needs 2 cells, %d left", len(cells)-pos)
			}
			dest, rc := int(cells[pos]), int(cells[pos+1])
			if rc < 0 {
				return errorf(BadCount, at, "range count %d", rc)
			}
			pos += 2
			if rc > (len(cells)-pos)/w {
				return errorf(Truncated, at, "%d ranges do not fit in %d cells", rc, len(cells)-pos)
			}
			if err := validateRanges(cells[pos:pos+rc*w], w, at); err != nil {
				return err
			}
			pos += rc * w
			edges = append(edges, edge{at: at, dest: dest})
		}
	}

	for _, e := range edges {
		if !bounds.Contains(e.dest) {
			return errorf(BadDest, e.at, "destination %d is not a state boundary", e.dest)
		}
	}
	return nil
}

// validateRanges checks the entries of one transition. at is the offset of
// the transition record, used for error reporting.
func validateRanges(entries []int32, w, at int) error {
	var prev Range
	for i := 0; i*w < len(entries); i++ {
		r := Range{Min: entries[i*w], Max: entries[i*w+w-1]}
		if r.IsPseudo() {
			if (!r.IsStartAnchor() && !r.IsEndAnchor()) || r.Max != r.Min {
				return errorf(BadSymbol, at, "range %d-%d is not a pseudo-symbol", r.Min, r.Max)
			}
		} else if r.Min > maxByte || r.Max < 0 || r.Max > maxByte {
			return errorf(BadSymbol, at, "range %d-%d outside byte values", r.Min, r.Max)
		}
		if i > 0 {
			if r.Min <= prev.Min {
				return errorf(Unsorted, at, "range %s follows %s", r, prev)
			}
			if !prev.IsPseudo() && !prev.IsEmpty() && r.Min <= prev.Max {
				return errorf(Unsorted, at, "range %s overlaps %s", r, prev)
			}
		}
		prev = r
	}
	return nil
}

// Validate re-checks the table. Tables returned by New always pass.
func (t *Table) Validate() error {
	return Validate(t.variant, t.cells)
}

// Detect returns the first variant, in canonical order, under which cells
// form a valid table. The exact-coverage and boundary checks of Validate
// make accidental validation under a wrong variant unlikely, but producers
// that know their variant should say so.
func Detect(cells []int32) (Variant, error) {
	var first error
	for _, v := range detectOrder {
		err := Validate(v, cells)
		if err == nil {
			return v, nil
		}
		if first == nil {
			first = err
		}
	}
	return 0, &Error{
		Kind:    BadVariant,
		Offset:  -1,
		Message: "cells do not form a table under any variant",
		Cause:   first,
	}
}
