package flat

import "github.com/coregx/lexdfa/table"

// lineFlags tracks which line anchors hold at the cursor:
//   - atStart (^): the previous byte is '\n', or the cursor is at input start
//   - atEnd ($):   the next byte is '\n', or the cursor is at input end
//
// A ^ pseudo-edge clears atStart when it fires. endUsed records that a $
// pseudo-edge has fired since the last consumed byte, so each pseudo-edge
// fires at most once per cursor position and zero-width edges cannot cycle.
type lineFlags struct {
	atStart bool
	atEnd   bool
	endUsed bool
}

// startFlags returns the flags for a scan starting at pos.
func startFlags(input []byte, pos int) lineFlags {
	return lineFlags{
		atStart: pos == 0 || input[pos-1] == '\n',
		atEnd:   pos == len(input) || input[pos] == '\n',
	}
}

// consume updates the flags after byte c was consumed and the cursor moved
// to pos.
func (f *lineFlags) consume(input []byte, pos int, c byte) {
	f.atStart = c == '\n'
	f.atEnd = pos == len(input) || input[pos] == '\n'
	f.endUsed = false
}

// canEnd reports whether a $ pseudo-edge may fire.
func (f lineFlags) canEnd() bool {
	return f.atEnd && !f.endUsed
}

// satisfies reports whether every anchor required by a holds.
func (f lineFlags) satisfies(a table.Anchor) bool {
	if a&table.AnchorStart != 0 && !f.atStart {
		return false
	}
	if a&table.AnchorEnd != 0 && !f.atEnd {
		return false
	}
	return true
}

// pending reports whether a pseudo-edge could still fire without consuming
// input.
func (f lineFlags) pending() bool {
	return f.atStart || f.canEnd()
}
