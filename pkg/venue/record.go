package venue

import (
	"errors"
	"fmt"

	"github.com/ssargent/venuedb/pkg/codec"
)

// Decode errors for records that parse but break the collection invariants
var (
	ErrInvalidPlan = errors.New("venue: invalid seating plan dimensions")
	ErrDuplicateID = errors.New("venue: duplicate id")
)

// Record layouts. The field order below is the on-disk format.
//
//	venue: id:int32 name address city state zip country:text capacity:int32
//	       description contact seatmap:text rows:int32 columns:int32
//	       seatCount:int32 seat*seatCount
//	seat:  id:int32 seat_type row_label col_label:text status:int32
const (
	textHeaderSize = 8
	seatMinSize    = 4 + 3*textHeaderSize + 4
	venueMinSize   = 4 + 6*textHeaderSize + 4 + 3*textHeaderSize + 4 + 4 + 4
)

// EncodeRecord writes the seat in record order
func (s *Seat) EncodeRecord(enc *codec.Encoder) {
	enc.PutInt32(s.ID)
	enc.PutString(s.SeatType)
	enc.PutString(s.RowLabel)
	enc.PutString(s.ColLabel)
	codec.PutEnum(enc, s.Status)
}

// DecodeRecord reads the seat in record order
func (s *Seat) DecodeRecord(dec *codec.Decoder) error {
	var err error
	if s.ID, err = dec.Int32(); err != nil {
		return fmt.Errorf("seat id: %w", err)
	}
	if s.SeatType, err = dec.String(); err != nil {
		return fmt.Errorf("seat %d type: %w", s.ID, err)
	}
	if s.RowLabel, err = dec.String(); err != nil {
		return fmt.Errorf("seat %d row label: %w", s.ID, err)
	}
	if s.ColLabel, err = dec.String(); err != nil {
		return fmt.Errorf("seat %d column label: %w", s.ID, err)
	}
	if s.Status, err = codec.ReadEnum[SeatStatus](dec); err != nil {
		return fmt.Errorf("seat %d status: %w", s.ID, err)
	}
	return nil
}

func (s *Seat) MinEncodedSize() int { return seatMinSize }

// EncodeRecord writes the venue and its seats in record order
func (v *Venue) EncodeRecord(enc *codec.Encoder) {
	enc.PutInt32(v.ID)
	enc.PutString(v.Name)
	enc.PutString(v.Address)
	enc.PutString(v.City)
	enc.PutString(v.State)
	enc.PutString(v.Zip)
	enc.PutString(v.Country)
	enc.PutInt32(v.Capacity)
	enc.PutString(v.Description)
	enc.PutString(v.Contact)
	enc.PutString(v.Seatmap)
	enc.PutInt32(v.Rows)
	enc.PutInt32(v.Columns)
	enc.PutInt32(int32(len(v.Seats)))
	for _, s := range v.Seats {
		s.EncodeRecord(enc)
	}
}

// DecodeRecord reads the venue and its seats in record order
func (v *Venue) DecodeRecord(dec *codec.Decoder) error {
	var err error
	if v.ID, err = dec.Int32(); err != nil {
		return fmt.Errorf("venue id: %w", err)
	}

	texts := []*string{&v.Name, &v.Address, &v.City, &v.State, &v.Zip, &v.Country}
	for _, field := range texts {
		if *field, err = dec.String(); err != nil {
			return fmt.Errorf("venue %d: %w", v.ID, err)
		}
	}
	if v.Capacity, err = dec.Int32(); err != nil {
		return fmt.Errorf("venue %d capacity: %w", v.ID, err)
	}
	for _, field := range []*string{&v.Description, &v.Contact, &v.Seatmap} {
		if *field, err = dec.String(); err != nil {
			return fmt.Errorf("venue %d: %w", v.ID, err)
		}
	}
	if v.Rows, err = dec.Int32(); err != nil {
		return fmt.Errorf("venue %d rows: %w", v.ID, err)
	}
	if v.Columns, err = dec.Int32(); err != nil {
		return fmt.Errorf("venue %d columns: %w", v.ID, err)
	}
	if !ValidPlan(v.Rows, v.Columns) {
		return fmt.Errorf("venue %d: %w: %dx%d", v.ID, ErrInvalidPlan, v.Rows, v.Columns)
	}

	seatCount, err := dec.Int32()
	if err != nil {
		return fmt.Errorf("venue %d seat count: %w", v.ID, err)
	}
	if seatCount < 0 || int(seatCount) > dec.Remaining()/seatMinSize {
		return fmt.Errorf("venue %d: %w: %d seats declared", v.ID, codec.ErrOversized, seatCount)
	}

	seats := make([]*Seat, 0, seatCount)
	seen := make(map[int32]struct{}, seatCount)
	for i := int32(0); i < seatCount; i++ {
		s := &Seat{}
		if err := s.DecodeRecord(dec); err != nil {
			return fmt.Errorf("venue %d seat %d: %w", v.ID, i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("venue %d: %w: seat %d", v.ID, ErrDuplicateID, s.ID)
		}
		seen[s.ID] = struct{}{}
		seats = append(seats, s)
	}
	v.Seats = seats

	return nil
}

func (v *Venue) MinEncodedSize() int { return venueMinSize }

// Marshal encodes a venue collection in the file format
func Marshal(venues []*Venue) []byte {
	return codec.Marshal(venues)
}

// Unmarshal decodes a venue collection from the file format. Venue ids must
// be unique across the collection.
func Unmarshal(data []byte) ([]*Venue, error) {
	venues, err := codec.Unmarshal[Venue](data)
	if err != nil {
		return nil, err
	}
	seen := make(map[int32]struct{}, len(venues))
	for _, v := range venues {
		if _, dup := seen[v.ID]; dup {
			return nil, fmt.Errorf("%w: venue %d", ErrDuplicateID, v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return venues, nil
}
