package scanner

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

// syncSet finds the next resynchronization point after a failed match.
type syncSet struct {
	ac *ahocorasick.Automaton
}

func newSyncSet(lits []string) (*syncSet, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: sync literals: %w", ErrInvalidConfig, err)
	}
	return &syncSet{ac: ac}, nil
}

// next returns the start of the first sync literal at or after from, or
// len(input) if there is none.
func (s *syncSet) next(input []byte, from int) int {
	if from >= len(input) {
		return len(input)
	}
	m := s.ac.Find(input, from)
	if m == nil {
		return len(input)
	}
	return m.Start
}
