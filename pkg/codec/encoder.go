package codec

import (
	"encoding/binary"
	"io"
	"math"
	"unsafe"
)

// ByteOrder is the byte order used for every fixed-width value, on both the
// write and the read path.
var ByteOrder = binary.LittleEndian

// Integer is the set of fixed-width integer kinds an enumeration may be
// declared over.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Enum is an enumerated value with a fixed underlying width that can report
// whether its raw value is one of the declared members.
type Enum interface {
	Integer
	Valid() bool
}

// Encoder appends encoded values to a buffer it owns
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder with capacity for sizeHint bytes
func NewEncoder(sizeHint int) *Encoder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// PutUint8 appends one byte
func (e *Encoder) PutUint8(v uint8) { e.buf = append(e.buf, v) }

// PutUint16 appends v in two little-endian bytes
func (e *Encoder) PutUint16(v uint16) { e.buf = ByteOrder.AppendUint16(e.buf, v) }

// PutUint32 appends v in four little-endian bytes
func (e *Encoder) PutUint32(v uint32) { e.buf = ByteOrder.AppendUint32(e.buf, v) }

// PutUint64 appends v in eight little-endian bytes
func (e *Encoder) PutUint64(v uint64) { e.buf = ByteOrder.AppendUint64(e.buf, v) }

// PutInt8 appends v as one byte
func (e *Encoder) PutInt8(v int8) { e.PutUint8(uint8(v)) }

// PutInt16 appends v as a little-endian uint16
func (e *Encoder) PutInt16(v int16) { e.PutUint16(uint16(v)) }

// PutInt32 appends v as a little-endian uint32
func (e *Encoder) PutInt32(v int32) { e.PutUint32(uint32(v)) }

// PutInt64 appends v as a little-endian uint64
func (e *Encoder) PutInt64(v int64) { e.PutUint64(uint64(v)) }

// PutFloat32 appends the IEEE 754 bits of v
func (e *Encoder) PutFloat32(v float32) { e.PutUint32(math.Float32bits(v)) }

// PutFloat64 appends the IEEE 754 bits of v
func (e *Encoder) PutFloat64(v float64) { e.PutUint64(math.Float64bits(v)) }

// PutBool writes a single byte, 1 for true and 0 for false
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutUint8(1)
		return
	}
	e.PutUint8(0)
}

// PutString writes text as [length:u64][raw bytes] with no terminator
func (e *Encoder) PutString(s string) {
	e.PutUint64(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// PutEnum writes an enumerated value as its underlying integer, using the
// width of the enumeration's declared type.
func PutEnum[E Enum](e *Encoder, v E) {
	switch unsafe.Sizeof(v) {
	case 1:
		e.PutUint8(uint8(v))
	case 2:
		e.PutUint16(uint16(v))
	case 4:
		e.PutUint32(uint32(v))
	default:
		e.PutUint64(uint64(v))
	}
}

// Bytes returns the encoded data. The slice aliases the encoder's buffer
// until the next Put or Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of encoded bytes
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset discards the encoded data but keeps the allocated buffer
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// WriteTo writes the encoded data to w
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.buf)
	return int64(n), err
}
