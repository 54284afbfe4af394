package codec

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

type testLevel int16

const (
	levelLow testLevel = iota
	levelMid
	levelHigh
)

func (l testLevel) Valid() bool { return l >= levelLow && l <= levelHigh }

type testFlag uint8

func (f testFlag) Valid() bool { return f < 4 }

func TestEncoder_FixedWidthLayout(t *testing.T) {
	testCases := []struct {
		name   string
		encode func(e *Encoder)
		want   []byte
	}{
		{"uint8", func(e *Encoder) { e.PutUint8(0xAB) }, []byte{0xAB}},
		{"int16", func(e *Encoder) { e.PutInt16(-2) }, []byte{0xFE, 0xFF}},
		{"uint32", func(e *Encoder) { e.PutUint32(0x01020304) }, []byte{0x04, 0x03, 0x02, 0x01}},
		{"int32 negative", func(e *Encoder) { e.PutInt32(-1) }, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"uint64", func(e *Encoder) { e.PutUint64(1) }, []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{"bool true", func(e *Encoder) { e.PutBool(true) }, []byte{1}},
		{"bool false", func(e *Encoder) { e.PutBool(false) }, []byte{0}},
		{"empty text", func(e *Encoder) { e.PutString("") }, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"text", func(e *Encoder) { e.PutString("ab") }, []byte{2, 0, 0, 0, 0, 0, 0, 0, 'a', 'b'}},
		{"enum int16", func(e *Encoder) { PutEnum(e, levelHigh) }, []byte{2, 0}},
		{"enum uint8", func(e *Encoder) { PutEnum(e, testFlag(3)) }, []byte{3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enc := NewEncoder(0)
			tc.encode(enc)
			if !bytes.Equal(enc.Bytes(), tc.want) {
				t.Errorf("encoded %v, want %v", enc.Bytes(), tc.want)
			}
		})
	}
}

func TestDecoder_ReadsWhatEncoderWrites(t *testing.T) {
	enc := NewEncoder(64)
	enc.PutInt8(-7)
	enc.PutUint16(65535)
	enc.PutInt32(math.MinInt32)
	enc.PutInt64(math.MaxInt64)
	enc.PutFloat32(1.5)
	enc.PutFloat64(-2.25)
	enc.PutBool(true)
	enc.PutString("🎟 row A")
	PutEnum(enc, levelMid)

	dec := NewDecoder(enc.Bytes())

	i8, err := dec.Int8()
	if err != nil || i8 != -7 {
		t.Fatalf("Int8 = %d, %v", i8, err)
	}
	u16, err := dec.Uint16()
	if err != nil || u16 != 65535 {
		t.Fatalf("Uint16 = %d, %v", u16, err)
	}
	i32, err := dec.Int32()
	if err != nil || i32 != math.MinInt32 {
		t.Fatalf("Int32 = %d, %v", i32, err)
	}
	i64, err := dec.Int64()
	if err != nil || i64 != math.MaxInt64 {
		t.Fatalf("Int64 = %d, %v", i64, err)
	}
	f32, err := dec.Float32()
	if err != nil || f32 != 1.5 {
		t.Fatalf("Float32 = %v, %v", f32, err)
	}
	f64, err := dec.Float64()
	if err != nil || f64 != -2.25 {
		t.Fatalf("Float64 = %v, %v", f64, err)
	}
	b, err := dec.Bool()
	if err != nil || !b {
		t.Fatalf("Bool = %v, %v", b, err)
	}
	s, err := dec.String()
	if err != nil || s != "🎟 row A" {
		t.Fatalf("String = %q, %v", s, err)
	}
	lvl, err := ReadEnum[testLevel](dec)
	if err != nil || lvl != levelMid {
		t.Fatalf("ReadEnum = %d, %v", lvl, err)
	}

	if err := dec.Done(); err != nil {
		t.Errorf("expected no trailing data: %v", err)
	}
}

func TestDecoder_Truncation(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		read func(d *Decoder) error
	}{
		{"int32 short", []byte{1, 2, 3}, func(d *Decoder) error { _, err := d.Int32(); return err }},
		{"uint64 empty", nil, func(d *Decoder) error { _, err := d.Uint64(); return err }},
		{"text prefix short", []byte{5, 0, 0}, func(d *Decoder) error { _, err := d.String(); return err }},
		{"text body short", []byte{5, 0, 0, 0, 0, 0, 0, 0, 'a', 'b'}, func(d *Decoder) error { _, err := d.String(); return err }},
		{"text length huge", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 'a'}, func(d *Decoder) error { _, err := d.String(); return err }},
		{"enum short", []byte{1}, func(d *Decoder) error { _, err := ReadEnum[testLevel](d); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dec := NewDecoder(tc.data)
			err := tc.read(dec)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("expected ErrTruncated, got %v", err)
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("expected error to wrap io.ErrUnexpectedEOF, got %v", err)
			}
			if dec.Offset() != 0 {
				t.Errorf("failed read moved offset to %d", dec.Offset())
			}
		})
	}
}

func TestReadEnum_RejectsUndeclaredValues(t *testing.T) {
	enc := NewEncoder(2)
	enc.PutInt16(9)

	dec := NewDecoder(enc.Bytes())
	v, err := ReadEnum[testLevel](dec)
	if !errors.Is(err, ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v (value %d)", err, v)
	}
	if v != 0 {
		t.Errorf("expected zero value on error, got %d", v)
	}

	negative := NewEncoder(2)
	negative.PutInt16(-1)
	if _, err := ReadEnum[testLevel](NewDecoder(negative.Bytes())); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum for -1, got %v", err)
	}
}

func TestDecoder_InvalidBool(t *testing.T) {
	dec := NewDecoder([]byte{2})
	if _, err := dec.Bool(); !errors.Is(err, ErrInvalidBool) {
		t.Fatalf("expected ErrInvalidBool, got %v", err)
	}
	if dec.Offset() != 0 {
		t.Errorf("offset moved to %d", dec.Offset())
	}
}

func TestEncoder_ResetAndWriteTo(t *testing.T) {
	enc := NewEncoder(8)
	enc.PutUint32(7)
	enc.Reset()
	if enc.Len() != 0 {
		t.Fatalf("Len after Reset = %d", enc.Len())
	}

	enc.PutString("x")
	var out bytes.Buffer
	n, err := enc.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != 9 || out.Len() != 9 {
		t.Errorf("WriteTo wrote %d bytes, buffer has %d", n, out.Len())
	}
}
