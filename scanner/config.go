package scanner

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Policy selects what the scanner does when no rule matches at the cursor,
// or a rule matches the empty string and would make no progress.
type Policy uint8

const (
	// Abort stops the scan. Err returns an *Error wrapping ErrNoMatch.
	Abort Policy = iota

	// ErrorToken emits a one-byte token with rule ErrorRule and continues.
	ErrorToken

	// SkipByte drops one byte silently and continues.
	SkipByte

	// SkipToSync emits one ErrorRule token covering the input up to the
	// next occurrence of any sync literal, or up to the end of input.
	SkipToSync
)

var policyNames = [...]string{
	Abort:      "abort",
	ErrorToken: "error-token",
	SkipByte:   "skip-byte",
	SkipToSync: "skip-to-sync",
}

// String returns the policy name.
func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if int(p) >= len(policyNames) {
		return nil, fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, p)
	}
	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The empty string selects Abort.
func (p *Policy) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = Abort
		return nil
	}
	i := slices.Index(policyNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, text)
	}
	*p = Policy(i)
	return nil
}

// Config configures a Scanner.
type Config struct {
	// Policy is applied when no rule matches at the cursor.
	//
	// Default: Abort
	Policy Policy

	// Skip lists rule ids whose tokens are dropped from the stream, such as
	// whitespace and comments. They still advance the cursor.
	Skip []int

	// SyncLiterals are the resynchronization points for SkipToSync, for
	// example ";" and "\n". Required by SkipToSync, ignored otherwise.
	SyncLiterals []string

	// Name labels metrics and log lines.
	//
	// Default: "default"
	Name string

	// Logger receives recovery and abort events.
	//
	// Default: zerolog.Nop()
	Logger zerolog.Logger
}

// DefaultConfig returns a configuration that aborts on the first
// unmatched byte.
func DefaultConfig() Config {
	return Config{
		Policy: Abort,
		Name:   "default",
		Logger: zerolog.Nop(),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if int(c.Policy) >= len(policyNames) {
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, c.Policy)
	}
	for _, r := range c.Skip {
		if r < 0 {
			return fmt.Errorf("%w: skip rule %d is negative", ErrInvalidConfig, r)
		}
	}
	if c.Policy == SkipToSync {
		if len(c.SyncLiterals) == 0 {
			return fmt.Errorf("%w: %v requires sync literals", ErrInvalidConfig, c.Policy)
		}
		for _, lit := range c.SyncLiterals {
			if lit == "" {
				return fmt.Errorf("%w: empty sync literal", ErrInvalidConfig)
			}
		}
	}
	return nil
}

// WithPolicy returns a new config with the specified recovery policy
func (c Config) WithPolicy(p Policy) Config {
	c.Policy = p
	return c
}

// WithSkip returns a new config that drops tokens of the given rules
func (c Config) WithSkip(rules ...int) Config {
	c.Skip = slices.Clone(rules)
	return c
}

// WithSyncLiterals returns a new config with the specified sync literals
func (c Config) WithSyncLiterals(lits ...string) Config {
	c.SyncLiterals = slices.Clone(lits)
	return c
}

// WithName returns a new config with the specified name
func (c Config) WithName(name string) Config {
	c.Name = name
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(l zerolog.Logger) Config {
	c.Logger = l
	return c
}
