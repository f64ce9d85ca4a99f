package scanner

import "strconv"

// ErrorRule is the rule id of tokens produced by recovery.
const ErrorRule = -1

// Pos is a 1-based line and column. Columns count bytes, not characters.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether p refers to a position in some input.
// The zero Pos is invalid.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column".
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is one lexeme: the rule that matched and the byte span it covers.
type Token struct {
	// Rule is the accepted rule id, or ErrorRule for input skipped by
	// recovery.
	Rule int

	// Start and End delimit the lexeme as input[Start:End].
	Start int
	End   int

	// Pos is the position of Start.
	Pos Pos
}

// IsError reports whether t was produced by recovery.
func (t Token) IsError() bool {
	return t.Rule == ErrorRule
}

// Len returns the length of the lexeme in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Text returns the lexeme within input.
func (t Token) Text(input []byte) []byte {
	return input[t.Start:t.End]
}
