package flat

import (
	"math/rand"
	"testing"

	"github.com/coregx/lexdfa/table"
)

// refState is a fully decoded state of the reference matcher.
type refState struct {
	accept int
	mask   table.Anchor
	trans  []refTrans
}

type refTrans struct {
	dest   int
	ranges [][2]int32
}

// refDecode reads every state of cells into a map keyed by offset, without
// going through the table decoder.
func refDecode(v table.Variant, cells []int32) map[int]refState {
	states := make(map[int]refState)
	for off := 0; off < len(cells); {
		start := off
		s := refState{accept: int(cells[off])}
		off++
		if v.HasMask() {
			s.mask = table.Anchor(cells[off])
			off++
		}
		n := int(cells[off])
		off++
		for i := 0; i < n; i++ {
			tr := refTrans{dest: int(cells[off])}
			rc := int(cells[off+1])
			off += 2
			for j := 0; j < rc; j++ {
				if v.IsRanged() {
					tr.ranges = append(tr.ranges, [2]int32{cells[off], cells[off+1]})
					off += 2
				} else {
					tr.ranges = append(tr.ranges, [2]int32{cells[off], cells[off]})
					off++
				}
			}
			s.trans = append(s.trans, tr)
		}
		states[start] = s
	}
	return states
}

// refMatch is a plain transcription of the walk: every range is tested, with
// no early exit, and the end-of-line condition is recomputed from the input
// on every step.
func refMatch(states map[int]refState, input []byte, start int, longest bool) Match {
	pos := start
	atStart := pos == 0 || input[pos-1] == '\n'
	eol := func() bool { return pos == len(input) || input[pos] == '\n' }
	holds := func(m table.Anchor) bool {
		return (m&table.AnchorStart == 0 || atStart) && (m&table.AnchorEnd == 0 || eol())
	}
	endUsed := false

	best := NoMatch
	cur := states[0]
	if longest && cur.accept >= 0 && holds(cur.mask) {
		best = Match{cur.accept, pos}
	}
	for {
		if cur.accept >= 0 && cur.mask&table.AnchorEnd != 0 &&
			pos < len(input) && input[pos] == '\n' &&
			(cur.mask&table.AnchorStart == 0 || atStart) {
			if !longest {
				return Match{cur.accept, pos}
			}
			best = Match{cur.accept, pos}
		}

		next := -1
	search:
		for _, tr := range cur.trans {
			for _, r := range tr.ranges {
				switch {
				case r[0] == table.StartAnchorSymbol:
					if atStart {
						atStart = false
						next = tr.dest
						break search
					}
				case r[0] == table.EndAnchorSymbol:
					if eol() && !endUsed {
						endUsed = true
						next = tr.dest
						break search
					}
				case pos < len(input) && r[0] <= int32(input[pos]) && int32(input[pos]) <= r[1]:
					atStart = input[pos] == '\n'
					pos++
					endUsed = false
					next = tr.dest
					break search
				}
			}
		}
		if next < 0 {
			if cur.accept >= 0 && holds(cur.mask) {
				return Match{cur.accept, pos}
			}
			return best
		}

		cur = states[next]
		if cur.accept >= 0 && holds(cur.mask) {
			if !longest {
				return Match{cur.accept, pos}
			}
			best = Match{cur.accept, pos}
		}
		if pos == len(input) && !atStart && !(eol() && !endUsed) {
			return best
		}
	}
}

// Symbols used by random tables and inputs.
var refAlphabet = []int32{table.EndAnchorSymbol, table.StartAnchorSymbol, '\n', 'a', 'b', 'c'}

// randomTable builds a table over refAlphabet. Transitions of one state may
// overlap; declaration order decides.
func randomTable(rng *rand.Rand, v table.Variant) (*table.Table, error) {
	b := table.NewBuilder(v)
	n := 1 + rng.Intn(6)
	ids := make([]table.StateID, n)
	for i := range ids {
		accept := -1
		if rng.Intn(3) == 0 {
			accept = rng.Intn(3)
		}
		mask := table.AnchorNone
		if v.HasMask() && rng.Intn(4) == 0 {
			mask = table.Anchor(1 + rng.Intn(3))
		}
		ids[i] = b.AddState(accept, mask)
	}
	for _, from := range ids {
		for k := rng.Intn(4); k > 0; k-- {
			var ranges []table.Range
			for _, sym := range refAlphabet {
				if rng.Intn(3) != 0 {
					continue
				}
				if sym < 0 {
					ranges = append(ranges, table.Range{Min: sym, Max: sym})
				} else {
					ranges = append(ranges, table.Byte(byte(sym)))
				}
			}
			if len(ranges) == 0 {
				continue
			}
			b.AddTransition(from, ids[rng.Intn(n)], ranges...)
		}
	}
	return b.Build()
}

func randomInput(rng *rand.Rand) []byte {
	in := make([]byte, rng.Intn(8))
	for i := range in {
		in[i] = "\nabcx"[rng.Intn(5)]
	}
	return in
}

func TestMatchAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	variants := []table.Variant{table.RangedMask, table.Ranged, table.SingleMask, table.Single}

	for iter := 0; iter < 2000; iter++ {
		v := variants[iter%len(variants)]
		tbl, err := randomTable(rng, v)
		if err != nil {
			t.Fatalf("randomTable(%v): %v", v, err)
		}
		states := refDecode(v, tbl.Cells())

		for _, kind := range []MatchKind{MatchKindEager, MatchKindLongest} {
			d := MustNew(tbl, DefaultConfig().WithMatchKind(kind))
			for k := 0; k < 5; k++ {
				input := randomInput(rng)
				for start := 0; start <= len(input); start++ {
					want := refMatch(states, input, start, kind == MatchKindLongest)
					if got := d.Match(input, start); got != want {
						t.Fatalf("%v %v table %v\nMatch(%q, %d) = %+v, reference %+v",
							v, kind, tbl.Cells(), input, start, got, want)
					}
				}
			}
		}
	}
}

func TestMatchProducerAgainstReference(t *testing.T) {
	tbl := loadTable(t, "comments.txt", table.RangedMask)
	states := refDecode(table.RangedMask, tbl.Cells())
	eager := MustNew(tbl, DefaultConfig())
	longest := MustNew(tbl, DefaultConfig().WithMatchKind(MatchKindLongest))

	input := []byte("x /* a */ y // z\n/**/ */ //\n/* \xe2\x82\xac \xf0\x9f\x98\x80 */ /* \xed\xa0\x80 */")
	for start := 0; start <= len(input); start++ {
		if got, want := eager.Match(input, start), refMatch(states, input, start, false); got != want {
			t.Errorf("eager Match(%d) = %+v, reference %+v", start, got, want)
		}
		if got, want := longest.Match(input, start), refMatch(states, input, start, true); got != want {
			t.Errorf("longest Match(%d) = %+v, reference %+v", start, got, want)
		}
	}
}

// FuzzMatch compares the matcher with the reference on random tables.
func FuzzMatch(f *testing.F) {
	f.Add(int64(0), []byte("ab\nc"), uint8(0))
	f.Add(int64(42), []byte("\n\n"), uint8(1))
	f.Add(int64(7), []byte(""), uint8(0))

	f.Fuzz(func(t *testing.T, seed int64, input []byte, start uint8) {
		rng := rand.New(rand.NewSource(seed))
		v := table.Variant(rng.Intn(4))
		tbl, err := randomTable(rng, v)
		if err != nil {
			t.Fatalf("randomTable: %v", err)
		}
		s := int(start) % (len(input) + 1)

		for _, kind := range []MatchKind{MatchKindEager, MatchKindLongest} {
			d := MustNew(tbl, DefaultConfig().WithMatchKind(kind))
			want := refMatch(refDecode(v, tbl.Cells()), input, s, kind == MatchKindLongest)
			if got := d.Match(input, s); got != want {
				t.Fatalf("%v %v: Match(%q, %d) = %+v, reference %+v", v, kind, input, s, got, want)
			}
		}
	})
}

// FuzzMatchCells checks that any cells the validator accepts can be walked
// without panicking and yield a result inside the input.
func FuzzMatchCells(f *testing.F) {
	f.Add([]byte{0, 0, 0}, []byte("a"))
	f.Add([]byte{0xff, 0, 1, 7, 1, 'a', 'a', 0, 0, 0}, []byte("aa"))
	f.Add([]byte{0xff, 0, 1, 7, 1, 0xfe, 0xfe, 0, 3, 0}, []byte("\n"))

	f.Fuzz(func(t *testing.T, data, input []byte) {
		cells := make([]int32, len(data))
		for i, b := range data {
			cells[i] = int32(int8(b))
		}
		tbl, err := table.New(table.RangedMask, cells)
		if err != nil {
			return
		}
		d := MustNew(tbl, DefaultConfig().WithMatchKind(MatchKindLongest))
		for start := 0; start <= len(input); start++ {
			m := d.Match(input, start)
			if m.Ok() && (m.End < start || m.End > len(input)) {
				t.Fatalf("Match(%q, %d) = %+v, end outside input", input, start, m)
			}
			if !m.Ok() && m != NoMatch {
				t.Fatalf("Match(%q, %d) = %+v, want NoMatch", input, start, m)
			}
		}
	})
}
