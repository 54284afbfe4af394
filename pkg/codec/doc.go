// Package codec provides the fixed-layout binary encoding used by venuedb.
//
// The codec has two layers. The primitive layer (Encoder, Decoder) writes and
// reads single values; the record layer (Record, EncodeCollection,
// DecodeCollection) composes primitives into whole entities and
// count-prefixed lists of entities.
//
// # Primitive Format
//
// All fixed-width values use little-endian byte order:
//
//	int8/uint8        1 byte
//	int16/uint16      2 bytes
//	int32/uint32      4 bytes
//	int64/uint64      8 bytes
//	float32/float64   IEEE-754 bits, 4 or 8 bytes
//	bool              1 byte, 0 or 1
//	text              [length:u64][raw bytes], no terminator
//	enum              underlying integer at the enum type's width
//
// There is no magic number, version tag or checksum. The field order of a
// record is its format.
//
// # Collections
//
//	[count:u64][record 0][record 1]...[record count-1]
//
// Decoding a collection produces a fresh slice. A failure on any element
// fails the whole collection; partially decoded elements are discarded.
//
// # Usage
//
//	data := codec.Marshal(venues)
//
//	venues, err := codec.Unmarshal[venue.Venue](data)
//	if err != nil {
//	    return err // truncated, out-of-range enum, trailing bytes
//	}
//
// # Error Handling
//
// Decoders never substitute defaults for missing data:
//   - ErrTruncated when the input ends before a value or declared length
//   - ErrInvalidEnum when an enum's raw value is not a declared member
//   - ErrInvalidBool when a boolean byte is neither 0 nor 1
//   - ErrOversized when a collection count cannot fit in the remaining input
//   - ErrTrailingData when Unmarshal finds bytes after the last record
//
// # Thread Safety
//
// Encoder and Decoder are not safe for concurrent use.
package codec
