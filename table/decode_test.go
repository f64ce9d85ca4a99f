package table

import (
	"testing"
)

func TestDecodeState(t *testing.T) {
	tbl := MustNew(RangedMask, loadCells(t, "comments.txt"))

	root := tbl.State(0)
	if root.Accepting() || root.Anchors != AnchorNone || root.NumTransitions != 1 {
		t.Errorf("root = %+v", root)
	}

	// State 7 follows the first '/': two transitions, to '*' and to '/'.
	s := tbl.State(7)
	if s.NumTransitions != 2 {
		t.Fatalf("state 7 has %d transitions, want 2", s.NumTransitions)
	}
	it := tbl.Transitions(s)
	want := []struct {
		dest int
		r    Range
	}{
		{18, Byte('*')},
		{64, Byte('/')},
	}
	for i, w := range want {
		tr, ok := it.Next()
		if !ok {
			t.Fatalf("transition %d missing", i)
		}
		if tr.Dest != w.dest || tr.NumRanges != 1 {
			t.Errorf("transition %d = %+v, want dest %d", i, tr, w.dest)
		}
		if got := tbl.Range(tr, 0); got != w.r {
			t.Errorf("transition %d range = %v, want %v", i, got, w.r)
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("iterator should be exhausted")
	}

	accept := tbl.State(193)
	if accept.Accept != 0 || !accept.Accepting() {
		t.Errorf("state 193 = %+v, want accepting rule 0", accept)
	}
}

func TestDecodeSingleValue(t *testing.T) {
	tbl := MustNew(SingleMask, loadCells(t, "hello.txt"))

	word := "hello"
	off := 0
	for i := 0; i < len(word); i++ {
		s := tbl.State(off)
		it := tbl.Transitions(s)
		tr, ok := it.Next()
		if !ok {
			t.Fatalf("state %d has no transition", off)
		}
		if got := tbl.Range(tr, 0); got != Byte(word[i]) {
			t.Errorf("state %d range = %v, want %q", off, got, word[i])
		}
		off = tr.Dest
	}
	if s := tbl.State(off); s.Accept != 0 || s.NumTransitions != 0 {
		t.Errorf("final state = %+v", s)
	}
}

func TestTransitionEndSkipsRanges(t *testing.T) {
	tbl := MustNew(RangedMask, loadCells(t, "comments.txt"))

	// State 18 is inside a block comment; its first transition has two
	// ranges and the second starts right after them.
	it := tbl.Transitions(tbl.State(18))
	first, _ := it.Next()
	second, _ := it.Next()
	if first.NumRanges != 2 {
		t.Fatalf("first transition has %d ranges, want 2", first.NumRanges)
	}
	if first.End() != second.Offset {
		t.Errorf("End() = %d, next transition at %d", first.End(), second.Offset)
	}
	if first.End() != first.Offset+2+2*2 {
		t.Errorf("End() = %d, want %d", first.End(), first.Offset+6)
	}
}

// Decoding the same offset twice yields identical records.
func TestDecodeIdempotent(t *testing.T) {
	tbl := MustNew(RangedMask, loadCells(t, "comments.txt"))

	tbl.EachState(func(s State) {
		again := tbl.State(s.Offset)
		if again != s {
			t.Errorf("State(%d) = %+v, then %+v", s.Offset, s, again)
		}

		a, b := tbl.Transitions(s), tbl.Transitions(again)
		for {
			ta, oka := a.Next()
			tb, okb := b.Next()
			if oka != okb || ta != tb {
				t.Errorf("state %d: transitions differ: %+v vs %+v", s.Offset, ta, tb)
				return
			}
			if !oka {
				return
			}
			for i := 0; i < ta.NumRanges; i++ {
				if tbl.Range(ta, i) != tbl.Range(tb, i) {
					t.Errorf("state %d: range %d differs", s.Offset, i)
				}
			}
		}
	})
}

func TestStateOutOfRangePanics(t *testing.T) {
	tbl := MustNew(RangedMask, []int32{0, 0, 0})

	for _, off := range []int{-1, 1, 3, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("State(%d) should panic", off)
				}
			}()
			tbl.State(off)
		}()
	}
}
