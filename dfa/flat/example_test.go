package flat_test

import (
	"fmt"

	"github.com/coregx/lexdfa/dfa/flat"
	"github.com/coregx/lexdfa/table"
)

func Example() {
	// [0-9]+ is rule 0, [a-z]+ is rule 1.
	b := table.NewBuilder(table.RangedMask)
	root := b.AddState(-1, table.AnchorNone)
	num := b.AddState(0, table.AnchorNone)
	word := b.AddState(1, table.AnchorNone)
	b.AddTransition(root, num, table.Span('0', '9'))
	b.AddTransition(num, num, table.Span('0', '9'))
	b.AddTransition(root, word, table.Span('a', 'z'))
	b.AddTransition(word, word, table.Span('a', 'z'))
	tbl, err := b.Build()
	if err != nil {
		panic(err)
	}

	cfg := flat.DefaultConfig().WithMatchKind(flat.MatchKindLongest)
	d := flat.MustNew(tbl, cfg)

	input := []byte("abc123")
	for pos := 0; pos < len(input); {
		m := d.Match(input, pos)
		if !m.Ok() {
			break
		}
		fmt.Printf("rule %d: %s\n", m.Rule, input[pos:m.End])
		pos = m.End
	}
	// Output:
	// rule 1: abc
	// rule 0: 123
}
