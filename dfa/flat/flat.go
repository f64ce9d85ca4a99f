// Package flat implements the matcher for precompiled flat DFA tables.
//
// A match walks the table from the root state at offset 0, consuming one
// input byte per transition and evaluating line anchors, and reports the
// rule accepted at the end of the walk together with the cursor position
// past the matched text. No object graph is built: every state is decoded
// from the table as it is visited.
//
// Anchors are handled uniformly as zero-width conditions, whether the table
// encodes them as a per-state mask or as pseudo-symbol transitions:
//   - ^ holds when the previous byte is '\n' or the cursor is at input start
//   - $ holds when the next byte is '\n' or the cursor is at input end
//
// A match never allocates and never writes to the table, so one DFA may be
// used by any number of goroutines at once.
//
// Example:
//
//	d, _ := flat.New(tbl, flat.DefaultConfig())
//	for pos := 0; pos < len(input); {
//	    m := d.Match(input, pos)
//	    if !m.Ok() {
//	        break
//	    }
//	    fmt.Println(m.Rule, string(input[pos:m.End]))
//	    pos = m.End
//	}
package flat

import (
	"errors"

	"github.com/coregx/lexdfa/table"
)

// Match is the result of one match call.
type Match struct {
	// Rule is the accepted rule id, or -1 for no match.
	Rule int

	// End is the cursor position just past the matched text.
	// It is -1 when there is no match.
	End int
}

// NoMatch is returned when no rule matches at the start position.
var NoMatch = Match{Rule: -1, End: -1}

// Ok reports whether a rule matched.
func (m Match) Ok() bool {
	return m.Rule >= 0
}

// DFA matches input against one flat table.
type DFA struct {
	table *table.Table
	kind  MatchKind
}

// New returns a matcher over t.
func New(t *table.Table, cfg Config) (*DFA, error) {
	if t == nil {
		return nil, errors.New("flat: nil table")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DFA{table: t, kind: cfg.MatchKind}, nil
}

// MustNew is like New but panics on error.
func MustNew(t *table.Table, cfg Config) *DFA {
	d, err := New(t, cfg)
	if err != nil {
		panic(err)
	}
	return d
}

// Table returns the table the matcher walks.
func (d *DFA) Table() *table.Table {
	return d.table
}

// MatchKind returns the configured match semantics.
func (d *DFA) MatchKind() MatchKind {
	return d.kind
}
