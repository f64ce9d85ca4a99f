package table

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// cellsPerLine is the number of cells FormatText writes per line.
const cellsPerLine = 20

// ParseText reads cells written as comma or whitespace separated decimal
// integers, the form in which generators print tables and C sources embed
// them. Braces, semicolons and // line comments are ignored, so the body of
// a C array initializer can be passed through unchanged.
func ParseText(r io.Reader) ([]int32, error) {
	var cells []int32
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			switch r {
			case ',', ' ', '\t', '\r', '{', '}', ';':
				return true
			}
			return false
		})
		for _, f := range fields {
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, &Error{
					Kind:    BadFormat,
					Offset:  len(cells),
					Message: "line " + strconv.Itoa(line) + ": bad cell " + strconv.Quote(f),
					Cause:   err,
				}
			}
			cells = append(cells, int32(v))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &Error{Kind: BadFormat, Offset: -1, Message: "reading table text", Cause: err}
	}
	return cells, nil
}

// FormatText writes cells as comma separated integers, cellsPerLine per line.
// The output is accepted by ParseText and is valid inside a C array
// initializer.
func FormatText(w io.Writer, cells []int32) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i, c := range cells {
		buf = strconv.AppendInt(buf[:0], int64(c), 10)
		if i < len(cells)-1 {
			buf = append(buf, ',')
			if (i+1)%cellsPerLine == 0 {
				buf = append(buf, '\n')
			} else {
				buf = append(buf, ' ')
			}
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if len(cells) > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Width returns the smallest element width in bytes (1, 2 or 4) able to hold
// every cell as a signed integer.
func Width(cells []int32) int {
	width := 1
	for _, c := range cells {
		switch {
		case c < math.MinInt16 || c > math.MaxInt16:
			return 4
		case c < math.MinInt8 || c > math.MaxInt8:
			width = 2
		}
	}
	return width
}

// String returns the table in text form.
func (t *Table) String() string {
	var sb strings.Builder
	_ = FormatText(&sb, t.cells)
	return sb.String()
}
