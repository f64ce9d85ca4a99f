package table

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/sys/cpu"

	"github.com/coregx/lexdfa/internal/conv"
)

// Binary layout (header fields little-endian):
//
//	magic    [4]byte "LXDF"
//	version  uint16
//	variant  uint8
//	width    uint8   bytes per cell: 1, 2 or 4
//	flags    uint8   flagCompressed | flagBigEndian
//	reserved uint8
//	count    uint32  number of cells
//	body     count*width bytes, or when compressed:
//	         uint32 compressed length + lz4 block
const (
	magic      = "LXDF"
	version    = uint16(1)
	headerSize = 14

	flagCompressed = 1 << 0
	flagBigEndian  = 1 << 1

	// maxCells bounds the allocation made for a decoded table.
	maxCells = 1 << 26
)

var errNotCompressible = errors.New("table body not compressible")

// ByteOrder selects the byte order of cells in the binary body.
type ByteOrder uint8

const (
	// LittleEndian stores cells least significant byte first.
	LittleEndian ByteOrder = iota

	// BigEndian stores cells most significant byte first.
	BigEndian

	// NativeEndian stores cells in the byte order of the running machine,
	// so C consumers can map the body directly.
	NativeEndian
)

func (o ByteOrder) resolve() binary.ByteOrder {
	switch o {
	case BigEndian:
		return binary.BigEndian
	case NativeEndian:
		if cpu.IsBigEndian {
			return binary.BigEndian
		}
		return binary.LittleEndian
	default:
		return binary.LittleEndian
	}
}

// EncodeOptions control the binary form written by Encode.
type EncodeOptions struct {
	// Compress stores the body as an lz4 block. Bodies that do not shrink
	// are stored uncompressed.
	Compress bool

	// Order is the byte order of the cells.
	Order ByteOrder
}

// WriteTo writes the table in binary form with default options.
// It implements io.WriterTo.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	return t.Encode(w, EncodeOptions{})
}

// Encode writes the table in binary form.
func (t *Table) Encode(w io.Writer, opts EncodeOptions) (int64, error) {
	order := opts.Order.resolve()
	width := Width(t.cells)

	body := make([]byte, len(t.cells)*width)
	for i, c := range t.cells {
		p := body[i*width:]
		switch width {
		case 1:
			//nolint:gosec // G115: two's complement byte of a checked int8
			p[0] = byte(conv.Int32ToInt8(c))
		case 2:
			//nolint:gosec // G115: two's complement of a checked int16
			order.PutUint16(p, uint16(conv.Int32ToInt16(c)))
		default:
			//nolint:gosec // G115: two's complement reinterpretation
			order.PutUint32(p, uint32(c))
		}
	}

	var flags byte
	if order == binary.BigEndian {
		flags |= flagBigEndian
	}
	if opts.Compress {
		packed, err := lz4Compress(body)
		switch {
		case err == nil:
			body = packed
			flags |= flagCompressed
		case !errors.Is(err, errNotCompressible):
			return 0, err
		}
	}

	var hdr [headerSize]byte
	copy(hdr[0:4], magic)
	binary.LittleEndian.PutUint16(hdr[4:6], version)
	hdr[6] = byte(t.variant)
	hdr[7] = byte(width)
	hdr[8] = flags
	binary.LittleEndian.PutUint32(hdr[10:14], conv.IntToUint32(len(t.cells)))

	n, err := w.Write(hdr[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(body)
	total += int64(n)
	return total, err
}

// ReadFrom reads a table written by Encode and validates it.
func ReadFrom(r io.Reader) (*Table, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, formatError("reading header", err)
	}
	if string(hdr[0:4]) != magic {
		return nil, formatError(fmt.Sprintf("bad magic %q", hdr[0:4]), nil)
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != version {
		return nil, formatError(fmt.Sprintf("unsupported version %d", v), nil)
	}
	variant := Variant(hdr[6])
	if !variant.valid() {
		return nil, ErrUnknownVariant
	}
	width := int(hdr[7])
	if width != 1 && width != 2 && width != 4 {
		return nil, formatError(fmt.Sprintf("bad cell width %d", width), nil)
	}
	flags := hdr[8]
	count := binary.LittleEndian.Uint32(hdr[10:14])
	if count > maxCells {
		return nil, formatError(fmt.Sprintf("cell count %d exceeds limit", count), nil)
	}

	size := int(count) * width
	var body []byte
	if flags&flagCompressed != 0 {
		var lenBuf [4]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, formatError("reading compressed length", err)
		}
		n := binary.LittleEndian.Uint32(lenBuf[:])
		if int64(n) > int64(lz4.CompressBlockBound(size)) {
			return nil, formatError(fmt.Sprintf("compressed length %d exceeds bound", n), nil)
		}
		packed := make([]byte, n)
		if _, err := io.ReadFull(r, packed); err != nil {
			return nil, formatError("reading compressed body", err)
		}
		var err error
		if body, err = lz4Decompress(packed, size); err != nil {
			return nil, err
		}
	} else {
		body = make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, formatError("reading body", err)
		}
	}

	var order binary.ByteOrder = binary.LittleEndian
	if flags&flagBigEndian != 0 {
		order = binary.BigEndian
	}
	cells := make([]int32, count)
	for i := range cells {
		p := body[i*width:]
		switch width {
		case 1:
			cells[i] = int32(int8(p[0]))
		case 2:
			//nolint:gosec // G115: sign-extending a stored int16
			cells[i] = int32(int16(order.Uint16(p)))
		default:
			//nolint:gosec // G115: reinterpreting a stored int32
			cells[i] = int32(order.Uint32(p))
		}
	}
	return New(variant, cells)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Table) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// It is meant for zero Tables; a Table already in use must not be
// unmarshaled into.
func (t *Table) UnmarshalBinary(data []byte) error {
	parsed, err := ReadFrom(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// lz4Compress returns the compressed length prefix followed by the block.
func lz4Compress(src []byte) ([]byte, error) {
	buf := make([]byte, 4+lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, buf[4:], nil)
	if err != nil {
		return nil, err
	} else if n == 0 || n >= len(src) {
		return nil, errNotCompressible
	}
	binary.LittleEndian.PutUint32(buf, conv.IntToUint32(n))
	return buf[:4+n], nil
}

func lz4Decompress(src []byte, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(src, buf)
	if err != nil {
		return nil, formatError("decompressing body", err)
	}
	if n != size {
		return nil, formatError(fmt.Sprintf("decompressed %d bytes, want %d", n, size), nil)
	}
	return buf, nil
}

func formatError(msg string, cause error) *Error {
	return &Error{Kind: BadFormat, Offset: -1, Message: msg, Cause: cause}
}
