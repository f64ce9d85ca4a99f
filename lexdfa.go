// Package lexdfa runs lexers compiled ahead of time into flat DFA tables.
//
// A generator turns a set of lexical rules into a single flattened array of
// integers. lexdfa loads that array, validates it once, and then answers
// which rule matches at a given input position without building any
// automaton in memory:
//   - table decodes and validates the four table encodings, and reads and
//     writes them in C-array text form and a compact binary form
//   - dfa/flat walks a table from a start position, honoring ^ and $ anchors
//   - scanner turns repeated matches into a positioned token stream
//
// A Lexer bundles a table with the names of its rules and a match mode.
//
// Basic usage:
//
//	lx, err := lexdfa.ParseManifest(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m := lx.Match(input, 0)
//	if m.Ok() {
//	    fmt.Println(lx.RuleName(m.Rule), string(input[:m.End]))
//	}
//
// Tokenizing:
//
//	toks, err := lx.Tokenize(input)
//	for _, tok := range toks {
//	    fmt.Println(lx.RuleName(tok.Rule), tok.Pos)
//	}
//
// A Lexer is safe for concurrent use. Scanners created from it are not.
package lexdfa

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/coregx/lexdfa/dfa/flat"
	"github.com/coregx/lexdfa/scanner"
	"github.com/coregx/lexdfa/table"
)

// Options describe the rules of a table.
type Options struct {
	// Name labels scanner metrics and log lines.
	//
	// Default: "default"
	Name string

	// Rules names the rules by accept id. When set, every accept id in the
	// table must have a name.
	Rules []string

	// Skip names rules whose tokens Tokenize drops.
	Skip []string

	// Match selects eager or longest-match semantics.
	//
	// Default: flat.MatchKindEager
	Match flat.MatchKind
}

// Lexer is a validated table together with its rule names.
type Lexer struct {
	name  string
	dfa   *flat.DFA
	rules []string
	skip  []int
}

// New returns a lexer over t.
func New(t *table.Table, opts Options) (*Lexer, error) {
	if t == nil {
		return nil, errors.New("lexdfa: nil table")
	}
	d, err := flat.New(t, flat.DefaultConfig().WithMatchKind(opts.Match))
	if err != nil {
		return nil, err
	}

	if dup := duplicate(opts.Rules); dup != "" {
		return nil, fmt.Errorf("lexdfa: duplicate rule name %q", dup)
	}
	if len(opts.Rules) > 0 {
		var bad error
		t.EachState(func(s table.State) {
			if bad == nil && s.Accept >= len(opts.Rules) {
				bad = fmt.Errorf("lexdfa: state %d accepts rule %d, only %d rules named",
					s.Offset, s.Accept, len(opts.Rules))
			}
		})
		if bad != nil {
			return nil, bad
		}
	}

	l := &Lexer{
		name:  opts.Name,
		dfa:   d,
		rules: slices.Clone(opts.Rules),
	}
	if l.name == "" {
		l.name = "default"
	}
	for _, name := range opts.Skip {
		id, ok := l.RuleID(name)
		if !ok {
			return nil, fmt.Errorf("lexdfa: skip rule %q is not a rule", name)
		}
		l.skip = append(l.skip, id)
	}
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(t *table.Table, opts Options) *Lexer {
	l, err := New(t, opts)
	if err != nil {
		panic(err)
	}
	return l
}

// Load reads a table in binary form, as written by table.Encode, and
// returns a lexer over it.
func Load(r io.Reader, opts Options) (*Lexer, error) {
	t, err := table.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return New(t, opts)
}

func duplicate(names []string) string {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n
		}
		seen[n] = struct{}{}
	}
	return ""
}

// Name returns the lexer name.
func (l *Lexer) Name() string {
	return l.name
}

// Table returns the underlying table.
func (l *Lexer) Table() *table.Table {
	return l.dfa.Table()
}

// DFA returns the matcher.
func (l *Lexer) DFA() *flat.DFA {
	return l.dfa
}

// Rules returns the rule names indexed by accept id.
func (l *Lexer) Rules() []string {
	return slices.Clone(l.rules)
}

// RuleName returns the name of rule id. Unnamed rules are called "rule<id>"
// and scanner.ErrorRule is called "error".
func (l *Lexer) RuleName(id int) string {
	switch {
	case id == scanner.ErrorRule:
		return "error"
	case id >= 0 && id < len(l.rules):
		return l.rules[id]
	default:
		return "rule" + strconv.Itoa(id)
	}
}

// RuleID returns the accept id of the named rule.
func (l *Lexer) RuleID(name string) (int, bool) {
	i := slices.Index(l.rules, name)
	return i, i >= 0
}

// Match matches input at start. See flat.DFA.Match.
func (l *Lexer) Match(input []byte, start int) flat.Match {
	return l.dfa.Match(input, start)
}

// MatchString is like Match for string input.
func (l *Lexer) MatchString(input string, start int) flat.Match {
	return l.dfa.MatchString(input, start)
}

// NewScanner returns a scanner over input. The lexer's skip rules are added
// to cfg.Skip, and cfg.Name defaults to the lexer name.
func (l *Lexer) NewScanner(input []byte, cfg scanner.Config) (*scanner.Scanner, error) {
	skip := slices.Concat(cfg.Skip, l.skip)
	cfg = cfg.WithSkip(skip...)
	if cfg.Name == "" || cfg.Name == scanner.DefaultConfig().Name {
		cfg.Name = l.name
	}
	return scanner.New(l.dfa, input, cfg)
}

// Tokenize returns the tokens of input, stopping at the first position
// where no rule matches.
func (l *Lexer) Tokenize(input []byte) ([]scanner.Token, error) {
	s, err := l.NewScanner(input, scanner.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return s.Collect()
}
