package flat

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = errors.New("flat: invalid configuration")

// MatchKind selects when a walk stops.
type MatchKind uint8

const (
	// MatchKindEager returns the first accepting, anchor-satisfied state
	// reached. Tables whose producer guarantees that no longer match exists
	// once any accept is reached lose nothing and never look ahead.
	MatchKindEager MatchKind = iota

	// MatchKindLongest keeps walking after an accept and returns the last
	// accepting configuration seen before the walk halts (maximal munch).
	MatchKindLongest
)

// String returns "eager" or "longest".
func (k MatchKind) String() string {
	switch k {
	case MatchKindEager:
		return "eager"
	case MatchKindLongest:
		return "longest"
	default:
		return fmt.Sprintf("MatchKind(%d)", k)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MatchKind) MarshalText() ([]byte, error) {
	if k > MatchKindLongest {
		return nil, fmt.Errorf("%w: unknown match kind %d", ErrInvalidConfig, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MatchKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "eager", "":
		*k = MatchKindEager
	case "longest":
		*k = MatchKindLongest
	default:
		return fmt.Errorf("%w: unknown match kind %q", ErrInvalidConfig, text)
	}
	return nil
}

// Config configures a flat DFA matcher.
type Config struct {
	// MatchKind selects eager or longest-match semantics.
	//
	// Default: MatchKindEager
	MatchKind MatchKind
}

// DefaultConfig returns a configuration with eager matching.
func DefaultConfig() Config {
	return Config{
		MatchKind: MatchKindEager,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MatchKind > MatchKindLongest {
		return fmt.Errorf("%w: unknown match kind %d", ErrInvalidConfig, c.MatchKind)
	}
	return nil
}

// WithMatchKind returns a new config with the specified match kind
func (c Config) WithMatchKind(kind MatchKind) Config {
	c.MatchKind = kind
	return c
}
