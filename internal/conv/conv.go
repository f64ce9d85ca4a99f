// Package conv provides checked integer conversions for table cells.
//
// Table cells are signed 32-bit values that are stored on disk in 1, 2 or 4
// byte widths. These helpers narrow with bounds checks and panic on overflow,
// since an out-of-range cell at that point indicates a programming error
// (the width is always computed from the cells being written).
package conv

import "math"

// IntToInt32 converts an int to int32.
// Panics if n is outside the int32 range.
//
//go:inline
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}

// IntToUint32 converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Int32ToInt8 narrows a cell to one byte.
// Panics if v is outside the int8 range.
//
//go:inline
func Int32ToInt8(v int32) int8 {
	if v < math.MinInt8 || v > math.MaxInt8 {
		panic("integer overflow: int32 value out of int8 range")
	}
	return int8(v)
}

// Int32ToInt16 narrows a cell to two bytes.
// Panics if v is outside the int16 range.
//
//go:inline
func Int32ToInt16(v int32) int16 {
	if v < math.MinInt16 || v > math.MaxInt16 {
		panic("integer overflow: int32 value out of int16 range")
	}
	return int16(v)
}
