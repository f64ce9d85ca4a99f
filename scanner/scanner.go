// Package scanner turns repeated matches against a flat DFA into a token
// stream.
//
// The matcher answers a single question: which rule matches at this
// position, and where does the match end. A Scanner asks that question from
// offset 0 until the input is consumed, tracks line and column positions,
// drops tokens of skip rules, and applies a recovery Policy where no rule
// matches.
//
// Example:
//
//	s, err := scanner.New(d, input, scanner.DefaultConfig().WithSkip(ws))
//	if err != nil {
//	    return err
//	}
//	for tok := range s.All() {
//	    fmt.Println(tok.Rule, string(tok.Text(input)))
//	}
//	if err := s.Err(); err != nil {
//	    return err
//	}
package scanner

import (
	"bytes"
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/coregx/lexdfa/dfa/flat"
)

// Matcher reports the rule matching input at start. *flat.DFA implements it.
type Matcher interface {
	Match(input []byte, start int) flat.Match
}

// Scanner produces the tokens of one input. It is not safe for concurrent
// use; any number of Scanners may share one Matcher.
type Scanner struct {
	m      Matcher
	input  []byte
	policy Policy
	skip   []int
	sync   *syncSet
	name   string
	log    zerolog.Logger
	stats  counters

	pos  int
	line int
	col  int
	tok  Token
	err  error
	done bool
}

// New returns a scanner over input.
func New(m Matcher, input []byte, cfg Config) (*Scanner, error) {
	if m == nil {
		return nil, ErrNilMatcher
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		m:      m,
		policy: cfg.Policy,
		skip:   slices.Clone(cfg.Skip),
		name:   cfg.Name,
		log:    cfg.Logger,
	}
	if s.name == "" {
		s.name = "default"
	}
	if cfg.Policy == SkipToSync {
		sync, err := newSyncSet(cfg.SyncLiterals)
		if err != nil {
			return nil, err
		}
		s.sync = sync
	}
	s.stats = countersFor(s.name)
	s.Reset(input)
	return s, nil
}

// Reset rewinds the scanner to the start of input, keeping its
// configuration.
func (s *Scanner) Reset(input []byte) {
	s.input = input
	s.pos = 0
	s.line = 1
	s.col = 1
	s.tok = Token{}
	s.err = nil
	s.done = false
}

// Next advances to the next token, which is then available through Token.
// It returns false at the end of input or when the scan aborts; Err tells
// the two apart.
func (s *Scanner) Next() bool {
	for !s.done {
		if s.pos >= len(s.input) {
			s.done = true
			return false
		}

		start := s.pos
		m := s.m.Match(s.input, start)
		if !m.Ok() || m.End <= start {
			tok, ok := s.recover(start)
			if ok {
				s.tok = tok
				return true
			}
			continue
		}

		tok := Token{Rule: m.Rule, Start: start, End: m.End, Pos: s.position()}
		s.advance(m.End)
		if slices.Contains(s.skip, m.Rule) {
			s.stats.skipped.Inc()
			continue
		}
		s.stats.tokens.Inc()
		s.tok = tok
		return true
	}
	return false
}

// recover applies the policy at an offset where nothing matched. It returns
// the error token to emit, if any.
func (s *Scanner) recover(start int) (Token, bool) {
	s.stats.errors.Inc()
	pos := s.position()

	switch s.policy {
	case ErrorToken:
		s.logRecovery(start, pos)
		s.advance(start + 1)
		s.stats.tokens.Inc()
		return Token{Rule: ErrorRule, Start: start, End: start + 1, Pos: pos}, true

	case SkipByte:
		s.logRecovery(start, pos)
		s.advance(start + 1)
		return Token{}, false

	case SkipToSync:
		end := s.sync.next(s.input, start+1)
		s.logRecovery(start, pos)
		s.advance(end)
		s.stats.tokens.Inc()
		return Token{Rule: ErrorRule, Start: start, End: end, Pos: pos}, true

	default:
		s.err = &Error{Offset: start, Pos: pos, Cause: ErrNoMatch}
		s.done = true
		s.log.Warn().
			Str("lexer", s.name).
			Int("offset", start).
			Int("line", pos.Line).
			Int("column", pos.Column).
			Msg("scan aborted: no rule matches")
		return Token{}, false
	}
}

func (s *Scanner) logRecovery(offset int, pos Pos) {
	s.log.Debug().
		Str("lexer", s.name).
		Int("offset", offset).
		Int("line", pos.Line).
		Int("column", pos.Column).
		Stringer("policy", s.policy).
		Msg("no rule matches, recovering")
}

// advance moves the cursor to end, updating the line and column.
func (s *Scanner) advance(end int) {
	consumed := s.input[s.pos:end]
	if n := bytes.Count(consumed, []byte{'\n'}); n > 0 {
		s.line += n
		s.col = len(consumed) - bytes.LastIndexByte(consumed, '\n')
	} else {
		s.col += len(consumed)
	}
	s.stats.bytes.Add(float64(len(consumed)))
	s.pos = end
}

func (s *Scanner) position() Pos {
	return Pos{Line: s.line, Column: s.col}
}

// Token returns the token found by the last call to Next.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the error that stopped the scan, or nil at a clean end of
// input.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the cursor position.
func (s *Scanner) Offset() int {
	return s.pos
}

// Input returns the input being scanned.
func (s *Scanner) Input() []byte {
	return s.input
}

// All returns an iterator over the remaining tokens. Check Err after the
// loop.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for s.Next() {
			if !yield(s.tok) {
				return
			}
		}
	}
}

// Collect returns the remaining tokens. On abort it returns the tokens
// scanned before the failure together with the error.
func (s *Scanner) Collect() ([]Token, error) {
	var toks []Token
	for s.Next() {
		toks = append(toks, s.tok)
	}
	return toks, s.err
}
