package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"unsafe"
)

// Errors returned while decoding
var (
	ErrTruncated    = fmt.Errorf("codec: truncated input: %w", io.ErrUnexpectedEOF)
	ErrInvalidEnum  = errors.New("codec: enum value out of range")
	ErrInvalidBool  = errors.New("codec: invalid boolean byte")
	ErrTrailingData = errors.New("codec: trailing bytes after last record")
	ErrOversized    = errors.New("codec: declared length exceeds input")
)

// Decoder reads encoded values from a byte slice. Every read is bounds
// checked against the slice; a failed read leaves the position unchanged.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder creates a decoder over data. The decoder never modifies data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data}
}

// next consumes n bytes or reports ErrTruncated
func (d *Decoder) next(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, d.off, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Uint8 reads one byte
func (d *Decoder) Uint8() (uint8, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads two little-endian bytes
func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(b), nil
}

// Uint32 reads four little-endian bytes
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(b), nil
}

// Uint64 reads eight little-endian bytes
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(b), nil
}

// Int8 reads one byte as a signed value
func (d *Decoder) Int8() (int8, error) {
	v, err := d.Uint8()
	return int8(v), err
}

// Int16 reads a little-endian int16
func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

// Int32 reads a little-endian int32
func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

// Int64 reads a little-endian int64
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Float32 reads an IEEE 754 single
func (d *Decoder) Float32() (float32, error) {
	v, err := d.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads an IEEE 754 double
func (d *Decoder) Float64() (float64, error) {
	v, err := d.Uint64()
	return math.Float64frombits(v), err
}

// Bool reads one byte; anything other than 0 or 1 is rejected
func (d *Decoder) Bool() (bool, error) {
	b, err := d.next(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	d.off--
	return false, fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBool, b[0], d.off)
}

// String reads [length:u64][raw bytes]. The length is checked against the
// remaining input before anything is allocated.
func (d *Decoder) String() (string, error) {
	start := d.off
	n, err := d.Uint64()
	if err != nil {
		return "", err
	}
	if n > uint64(d.Remaining()) {
		d.off = start
		return "", fmt.Errorf("%w: text of %d bytes at offset %d, have %d", ErrTruncated, n, start, d.Remaining()-8)
	}
	b, _ := d.next(int(n))
	return string(b), nil
}

// ReadEnum reads an enumerated value at the width of E and validates it
// against E's declared members.
func ReadEnum[E Enum](d *Decoder) (E, error) {
	var v E
	start := d.off
	switch unsafe.Sizeof(v) {
	case 1:
		raw, err := d.Uint8()
		if err != nil {
			return v, err
		}
		v = E(raw)
	case 2:
		raw, err := d.Uint16()
		if err != nil {
			return v, err
		}
		v = E(raw)
	case 4:
		raw, err := d.Uint32()
		if err != nil {
			return v, err
		}
		v = E(raw)
	default:
		raw, err := d.Uint64()
		if err != nil {
			return v, err
		}
		v = E(raw)
	}
	if !v.Valid() {
		d.off = start
		var zero E
		return zero, fmt.Errorf("%w: %T(%d) at offset %d", ErrInvalidEnum, v, v, start)
	}
	return v, nil
}

// Offset returns the number of bytes consumed so far
func (d *Decoder) Offset() int {
	return d.off
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// Done reports ErrTrailingData if unread bytes remain
func (d *Decoder) Done() error {
	if d.Remaining() > 0 {
		return fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, d.Remaining(), d.off)
	}
	return nil
}
