package codec

import "fmt"

// Record is an entity that serializes its fields in one fixed order
type Record interface {
	EncodeRecord(enc *Encoder)
	DecodeRecord(dec *Decoder) error
}

// RecordPtr constrains P to be a *T that implements Record, so collections
// can allocate fresh elements while decoding.
type RecordPtr[T any] interface {
	*T
	Record
}

// minSizer is implemented by records that know their smallest encoding.
// It lets DecodeCollection reject impossible counts before allocating.
type minSizer interface {
	MinEncodedSize() int
}

// EncodeCollection writes [count:u64] followed by each element's record
func EncodeCollection[P Record](enc *Encoder, items []P) {
	enc.PutUint64(uint64(len(items)))
	for _, item := range items {
		item.EncodeRecord(enc)
	}
}

// DecodeCollection reads a count-prefixed collection into a new slice. If any
// element fails, the whole decode fails and no elements are returned.
func DecodeCollection[T any, P RecordPtr[T]](dec *Decoder) ([]P, error) {
	start := dec.Offset()
	count, err := dec.Uint64()
	if err != nil {
		return nil, fmt.Errorf("failed to read collection count: %w", err)
	}

	minSize := 1
	if s, ok := any(P(new(T))).(minSizer); ok {
		minSize = s.MinEncodedSize()
	}
	if minSize > 0 && count > uint64(dec.Remaining()/minSize) {
		return nil, fmt.Errorf("%w: %d records declared at offset %d, %d bytes left", ErrOversized, count, start, dec.Remaining())
	}

	capHint := count
	if r := uint64(dec.Remaining()); capHint > r {
		capHint = r
	}
	items := make([]P, 0, int(capHint))
	for i := uint64(0); i < count; i++ {
		item := P(new(T))
		if err := item.DecodeRecord(dec); err != nil {
			return nil, fmt.Errorf("failed to decode record %d of %d: %w", i, count, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// DecodeCollectionInto replaces *dst with the decoded collection. On error
// *dst is left untouched.
func DecodeCollectionInto[T any, P RecordPtr[T]](dec *Decoder, dst *[]P) error {
	items, err := DecodeCollection[T, P](dec)
	if err != nil {
		return err
	}
	*dst = items
	return nil
}

// Marshal encodes a whole collection into a new byte slice
func Marshal[P Record](items []P) []byte {
	enc := NewEncoder(64 * (len(items) + 1))
	EncodeCollection(enc, items)
	return enc.Bytes()
}

// Unmarshal decodes a whole collection from data. Bytes left over after the
// last record are treated as corruption.
func Unmarshal[T any, P RecordPtr[T]](data []byte) ([]P, error) {
	dec := NewDecoder(data)
	items, err := DecodeCollection[T, P](dec)
	if err != nil {
		return nil, err
	}
	if err := dec.Done(); err != nil {
		return nil, err
	}
	return items, nil
}
