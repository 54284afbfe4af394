package grid

import (
	"math"
	"testing"

	"github.com/ssargent/venuedb/pkg/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatAt(id int32, row, col int, status venue.SeatStatus) *venue.Seat {
	return &venue.Seat{ID: id, SeatType: "standard", RowLabel: RowLabel(row), ColLabel: ColLabel(col), Status: status}
}

func TestNew_RejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {2, -5}, {0, 0}, {MaxCells + 1, 1}, {math.MaxInt32, math.MaxInt32}} {
		g, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.Nil(t, g)
	}
}

func TestNew_LargestGrid(t *testing.T) {
	g, err := New(1024, MaxCells/1024)
	require.NoError(t, err)
	assert.Equal(t, MaxCells, g.Rows()*g.Columns())
}

func TestGrid_BoundsInvariant(t *testing.T) {
	g, err := New(3, 4)
	require.NoError(t, err)

	placed := map[[2]int]*venue.Seat{
		{0, 0}: seatAt(1, 0, 0, venue.StatusAvailable),
		{1, 3}: seatAt(2, 1, 3, venue.StatusAvailable),
		{2, 2}: seatAt(3, 2, 2, venue.StatusReserved),
	}
	for pos, s := range placed {
		require.True(t, g.Place(s, pos[0], pos[1]))
	}

	for r := -2; r < 5; r++ {
		for c := -2; c < 6; c++ {
			seat, ok := g.At(r, c)
			want, wantOK := placed[[2]int{r, c}]
			assert.Equal(t, wantOK, ok, "At(%d,%d)", r, c)
			if wantOK {
				assert.Same(t, want, seat)
			} else {
				assert.Nil(t, seat)
			}
		}
	}
	assert.Equal(t, 3, g.Len())
}

func TestGrid_PlaceOutOfBounds(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	s := seatAt(1, 0, 0, venue.StatusAvailable)
	assert.False(t, g.Place(s, 2, 0))
	assert.False(t, g.Place(s, 0, -1))
	assert.False(t, g.Place(nil, 0, 0))
	assert.Equal(t, 0, g.Len())
}

func TestGrid_RowSeats(t *testing.T) {
	g, err := New(2, 4)
	require.NoError(t, err)

	a := seatAt(1, 0, 3, venue.StatusAvailable)
	b := seatAt(2, 0, 1, venue.StatusAvailable)
	g.Place(a, 0, 3)
	g.Place(b, 0, 1)

	row := g.RowSeats(0)
	require.Len(t, row, 2)
	assert.Same(t, b, row[0])
	assert.Same(t, a, row[1])

	assert.Empty(t, g.RowSeats(1))
	assert.Empty(t, g.RowSeats(2))
	assert.Empty(t, g.RowSeats(-1))
}

func TestGrid_RemoveAndLocate(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	s := seatAt(1, 1, 1, venue.StatusAvailable)
	g.Place(s, 1, 1)

	row, col, ok := g.Locate(s)
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	assert.True(t, g.Remove(s))
	_, ok = g.At(1, 1)
	assert.False(t, ok)
	assert.False(t, g.Remove(s))
	_, _, ok = g.Locate(s)
	assert.False(t, ok)
}

func TestBuild_FromLabels(t *testing.T) {
	seats := []*venue.Seat{
		seatAt(1, 0, 0, venue.StatusAvailable),
		seatAt(2, 1, 2, venue.StatusAvailable),
		{ID: 3, RowLabel: "Balcony", ColLabel: "1"},
		{ID: 4, RowLabel: "C", ColLabel: "1"},    // row out of bounds
		{ID: 5, RowLabel: "a", ColLabel: "1"},    // same cell as seat 1
		{ID: 6, RowLabel: "B", ColLabel: "zero"}, // unparseable column
	}

	g, err := Build(2, 3, seats)
	require.NoError(t, err)

	s, ok := g.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, int32(1), s.ID)

	s, ok = g.At(1, 2)
	require.True(t, ok)
	assert.Equal(t, int32(2), s.ID)

	assert.Equal(t, 2, g.Len())

	_, err = Build(0, 3, seats)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestRowLabel(t *testing.T) {
	testCases := []struct {
		row   int
		label string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.label, RowLabel(tc.row))

			row, ok := ParseRowLabel(tc.label)
			require.True(t, ok)
			assert.Equal(t, tc.row, row)
		})
	}

	assert.Equal(t, "", RowLabel(-1))

	row, ok := ParseRowLabel("ab")
	require.True(t, ok)
	assert.Equal(t, 27, row)

	for _, bad := range []string{"", "A1", "1", "Ä", "-"} {
		_, ok := ParseRowLabel(bad)
		assert.False(t, ok, "ParseRowLabel(%q)", bad)
	}
}

func TestColLabel(t *testing.T) {
	assert.Equal(t, "1", ColLabel(0))
	assert.Equal(t, "12", ColLabel(11))

	col, ok := ParseColLabel("12")
	require.True(t, ok)
	assert.Equal(t, 11, col)

	for _, bad := range []string{"", "0", "-3", "x"} {
		_, ok := ParseColLabel(bad)
		assert.False(t, ok, "ParseColLabel(%q)", bad)
	}
}
