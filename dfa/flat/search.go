package flat

import (
	"fmt"

	"github.com/coregx/lexdfa/table"
)

// Match matches input starting at start and returns the accepted rule and
// the end of the matched text, or NoMatch.
//
// Under MatchKindEager the first accepting state whose anchors hold ends the
// walk. Under MatchKindLongest the walk continues until no transition
// applies and the last accepting configuration wins.
//
// Line anchors are judged against the whole input, not the call: ^ holds at
// start only if start is 0 or input[start-1] is '\n', and $ holds before any
// '\n' or at the end of input. Rules anchored with ^ therefore reject when
// scanning starts mid-line. A ^ pseudo-edge uses up the line start, so the
// state it leads to cannot also require ^.
//
// Panics if start is outside [0, len(input)].
func (d *DFA) Match(input []byte, start int) Match {
	if start < 0 || start > len(input) {
		panic(fmt.Sprintf("flat: start %d out of range [0, %d]", start, len(input)))
	}
	return d.walk(input, start, d.kind == MatchKindLongest)
}

// MatchString is like Match for string input.
func (d *DFA) MatchString(input string, start int) Match {
	return d.Match([]byte(input), start)
}

// walk is the single-pass table walk shared by both match kinds.
func (d *DFA) walk(input []byte, start int, longest bool) Match {
	t := d.table
	pos := start
	flags := startFlags(input, start)
	best := NoMatch

	st := t.State(0)
	if longest && st.Accepting() && flags.satisfies(st.Anchors) {
		best = Match{Rule: st.Accept, End: pos}
	}

	for {
		// $ holds before a newline that is not consumed: accept here rather
		// than trying the newline as ordinary input.
		if st.Accepting() && st.Anchors.Has(table.AnchorEnd) &&
			pos < len(input) && input[pos] == '\n' &&
			(!st.Anchors.Has(table.AnchorStart) || flags.atStart) {
			m := Match{Rule: st.Accept, End: pos}
			if !longest {
				return m
			}
			best = m
		}

		next, consumed, ok := d.step(st, input, pos, &flags)
		if !ok {
			// Halted. The root is the only state not checked on arrival.
			if st.Accepting() && flags.satisfies(st.Anchors) {
				return Match{Rule: st.Accept, End: pos}
			}
			return best
		}
		if consumed {
			pos++
		}

		st = t.State(next)
		if st.Accepting() && flags.satisfies(st.Anchors) {
			m := Match{Rule: st.Accept, End: pos}
			if !longest {
				return m
			}
			best = m
		}

		if pos == len(input) && !flags.pending() {
			return best
		}
	}
}

// step takes the first transition of st that applies at pos, in declaration
// order. It returns the destination offset and whether a byte was consumed;
// flags are updated for the new position. ok is false when no transition
// applies.
func (d *DFA) step(st table.State, input []byte, pos int, flags *lineFlags) (next int, consumed, ok bool) {
	t := d.table
	c := int32(-1)
	if pos < len(input) {
		c = int32(input[pos])
	}

	it := t.Transitions(st)
	for tr, more := it.Next(); more; tr, more = it.Next() {
		for i := 0; i < tr.NumRanges; i++ {
			r := t.Range(tr, i)
			if r.IsPseudo() {
				switch {
				case r.IsStartAnchor() && flags.atStart:
					flags.atStart = false
					return tr.Dest, false, true
				case r.IsEndAnchor() && flags.canEnd():
					flags.endUsed = true
					return tr.Dest, false, true
				}
				continue
			}
			// Pseudo-symbols sort first, so once a byte range is reached
			// with no byte left, or the byte is below the lower bound,
			// nothing later in this transition can match.
			if c < r.Min {
				break
			}
			if c <= r.Max {
				flags.consume(input, pos+1, input[pos])
				return tr.Dest, true, true
			}
		}
	}
	return 0, false, false
}
