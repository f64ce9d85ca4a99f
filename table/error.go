package table

import "fmt"

// Error types for table construction, validation and decoding of
// serialized forms.

// ErrUnknownVariant indicates a variant value or name outside the four
// supported encodings.
var ErrUnknownVariant = &Error{
	Kind:    BadVariant,
	Offset:  -1,
	Message: "unknown table variant",
}

// ErrBadFormat indicates a serialized table (text or binary) that could not
// be parsed. Matched by errors.Is for every BadFormat error.
var ErrBadFormat = &Error{
	Kind:    BadFormat,
	Offset:  -1,
	Message: "malformed table encoding",
}

// ErrorKind classifies table errors into categories
type ErrorKind uint8

const (
	// Truncated indicates a record extending past the end of the cells
	Truncated ErrorKind = iota

	// BadCount indicates a negative transition or range count
	BadCount

	// BadMask indicates an anchor mask outside 0..3, or a mask on a
	// variant that has none
	BadMask

	// BadAccept indicates an accept id below -1
	BadAccept

	// BadSymbol indicates a range value that is neither a byte nor a
	// pseudo-symbol
	BadSymbol

	// Unsorted indicates range entries that are out of order or overlap
	Unsorted

	// BadDest indicates a destination offset that is not a state boundary
	BadDest

	// BadVariant indicates an unknown encoding variant
	BadVariant

	// BadFormat indicates a malformed text or binary serialization
	BadFormat
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case Truncated:
		return "Truncated"
	case BadCount:
		return "BadCount"
	case BadMask:
		return "BadMask"
	case BadAccept:
		return "BadAccept"
	case BadSymbol:
		return "BadSymbol"
	case Unsorted:
		return "Unsorted"
	case BadDest:
		return "BadDest"
	case BadVariant:
		return "BadVariant"
	case BadFormat:
		return "BadFormat"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error describes a malformed table
type Error struct {
	Kind    ErrorKind
	Offset  int // cell offset of the offending record, -1 if not applicable
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := "table: " + e.Message
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errorf(kind ErrorKind, off int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: off, Message: fmt.Sprintf(format, args...)}
}
