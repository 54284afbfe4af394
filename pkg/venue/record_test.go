package venue

import (
	"errors"
	"math"
	"testing"

	"github.com/ssargent/venuedb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVenues() []*Venue {
	return []*Venue{
		{
			ID:          1,
			Name:        "Grand Hall",
			Address:     "1 Main St",
			City:        "Springfield",
			State:       "IL",
			Zip:         "62701",
			Country:     "US",
			Capacity:    6,
			Description: "Main concert hall",
			Contact:     "box@grand.example",
			Seatmap:     "grand.svg",
			Rows:        2,
			Columns:     3,
			Seats: []*Seat{
				{ID: 1, SeatType: "standard", RowLabel: "A", ColLabel: "1", Status: StatusAvailable},
				{ID: 2, SeatType: "standard", RowLabel: "A", ColLabel: "2", Status: StatusReserved},
				{ID: 3, SeatType: "vip", RowLabel: "A", ColLabel: "3", Status: StatusCheckedIn},
				{ID: 4, SeatType: "standard", RowLabel: "B", ColLabel: "1", Status: StatusCancelled},
				{ID: 5, SeatType: "standard", RowLabel: "B", ColLabel: "2", Status: StatusExpired},
				{ID: 6, SeatType: "", RowLabel: "Balcony", ColLabel: "x", Status: StatusAvailable},
			},
		},
		{
			ID:      7,
			Name:    "Pop-up Tent",
			City:    "",
			Rows:    0,
			Columns: 0,
			Seats:   []*Seat{},
		},
	}
}

func TestVenueRecord_RoundTrip(t *testing.T) {
	venues := sampleVenues()

	data := Marshal(venues)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, venues, decoded)
}

func TestVenueRecord_EmptyCollection(t *testing.T) {
	data := Marshal(nil)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, data)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSeatRecord_Layout(t *testing.T) {
	seat := &Seat{ID: 0x0102, SeatType: "v", RowLabel: "A", ColLabel: "10", Status: StatusCheckedIn}

	enc := codec.NewEncoder(0)
	seat.EncodeRecord(enc)

	want := []byte{
		0x02, 0x01, 0, 0, // id
		1, 0, 0, 0, 0, 0, 0, 0, 'v', // seat type
		1, 0, 0, 0, 0, 0, 0, 0, 'A', // row label
		2, 0, 0, 0, 0, 0, 0, 0, '1', '0', // col label
		2, 0, 0, 0, // status
	}
	assert.Equal(t, want, enc.Bytes())
}

func TestVenueRecord_DecodeFailures(t *testing.T) {
	data := Marshal(sampleVenues())

	t.Run("every truncation fails", func(t *testing.T) {
		for cut := 0; cut < len(data); cut++ {
			decoded, err := Unmarshal(data[:cut])
			if err == nil {
				t.Fatalf("expected error when truncated to %d of %d bytes", cut, len(data))
			}
			assert.Nil(t, decoded)
		}
	})

	t.Run("out of range status", func(t *testing.T) {
		venues := sampleVenues()
		venues[0].Seats[0].Status = SeatStatus(42)
		decoded, err := Unmarshal(Marshal(venues))
		require.Error(t, err)
		assert.True(t, errors.Is(err, codec.ErrInvalidEnum))
		assert.Nil(t, decoded)
	})

	t.Run("negative seat count", func(t *testing.T) {
		enc := codec.NewEncoder(0)
		enc.PutUint64(1)
		v := &Venue{ID: 1}
		v.EncodeRecord(enc)
		raw := enc.Bytes()
		// seatCount is the last int32 of a venue with no seats
		copy(raw[len(raw)-4:], []byte{0xFF, 0xFF, 0xFF, 0xFF})
		_, err := Unmarshal(raw)
		assert.ErrorIs(t, err, codec.ErrOversized)
	})

	t.Run("plan dimensions out of range", func(t *testing.T) {
		for _, dims := range [][2]int32{{-1, 4}, {4, -1}, {math.MaxInt32, math.MaxInt32}, {MaxPlanCells, 2}} {
			decoded, err := Unmarshal(Marshal([]*Venue{{ID: 1, Rows: dims[0], Columns: dims[1]}}))
			assert.ErrorIs(t, err, ErrInvalidPlan, "%dx%d", dims[0], dims[1])
			assert.Nil(t, decoded)
		}
	})

	t.Run("duplicate venue ids", func(t *testing.T) {
		decoded, err := Unmarshal(Marshal([]*Venue{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}))
		assert.ErrorIs(t, err, ErrDuplicateID)
		assert.Nil(t, decoded)
	})

	t.Run("duplicate seat ids", func(t *testing.T) {
		v := &Venue{ID: 2, Seats: []*Seat{{ID: 5, RowLabel: "A", ColLabel: "1"}, {ID: 5, RowLabel: "A", ColLabel: "2"}}}
		decoded, err := Unmarshal(Marshal([]*Venue{v}))
		assert.ErrorIs(t, err, ErrDuplicateID)
		assert.Nil(t, decoded)
	})
}

func TestValidPlan(t *testing.T) {
	assert.True(t, ValidPlan(0, 0))
	assert.True(t, ValidPlan(0, 7))
	assert.True(t, ValidPlan(1024, 1024))
	assert.False(t, ValidPlan(1025, 1024))
	assert.False(t, ValidPlan(-1, 0))
	assert.False(t, ValidPlan(math.MaxInt32, math.MaxInt32))
}

func TestSeatStatus_Transitions(t *testing.T) {
	testCases := []struct {
		from, to SeatStatus
		allowed  bool
	}{
		{StatusAvailable, StatusReserved, true},
		{StatusReserved, StatusCheckedIn, true},
		{StatusAvailable, StatusCancelled, true},
		{StatusAvailable, StatusExpired, true},
		{StatusReserved, StatusExpired, true},
		{StatusAvailable, StatusCheckedIn, false},
		{StatusAvailable, StatusAvailable, false},
		{StatusReserved, StatusAvailable, false},
		{StatusCancelled, StatusAvailable, false},
		{StatusExpired, StatusAvailable, false},
		{StatusCheckedIn, StatusExpired, false},
		{StatusReserved, StatusCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestSeatStatus_ParseAndGlyph(t *testing.T) {
	for _, name := range []string{"available", "reserved", "checked_in", "cancelled", "expired"} {
		s, err := ParseSeatStatus(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	sold, err := ParseSeatStatus("SOLD")
	require.NoError(t, err)
	assert.Equal(t, StatusReserved, sold)

	_, err = ParseSeatStatus("open")
	assert.Error(t, err)

	assert.Equal(t, "[A]", StatusAvailable.Glyph())
	assert.Equal(t, "[S]", StatusReserved.Glyph())
	assert.Equal(t, "[C]", StatusCheckedIn.Glyph())
	assert.Equal(t, "[X]", StatusCancelled.Glyph())
	assert.Equal(t, "[X]", StatusExpired.Glyph())
	assert.False(t, SeatStatus(9).Valid())
}

func TestVenue_SeatHelpers(t *testing.T) {
	v := sampleVenues()[0]

	assert.Equal(t, int32(7), v.NextSeatID())

	s, ok := v.Seat(3)
	require.True(t, ok)
	assert.Equal(t, "A3", s.Label())

	removed, ok := v.RemoveSeat(3)
	require.True(t, ok)
	assert.Equal(t, int32(3), removed.ID)
	assert.Len(t, v.Seats, 5)
	_, ok = v.Seat(3)
	assert.False(t, ok)

	clone := v.Clone()
	clone.Seats[0].Status = StatusExpired
	assert.Equal(t, StatusAvailable, v.Seats[0].Status)

	counts := v.StatusCounts()
	assert.Equal(t, 2, counts[StatusAvailable])
}
