package grid

import (
	"testing"

	"github.com/ssargent/venuedb/pkg/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRow builds a single-row grid of len(statuses) seats
func buildRow(t *testing.T, statuses ...venue.SeatStatus) *Grid {
	t.Helper()
	g, err := New(1, len(statuses))
	require.NoError(t, err)
	for col, st := range statuses {
		g.Place(seatAt(int32(col+1), 0, col, st), 0, col)
	}
	return g
}

func starts(t *testing.T, g *Grid, blocks [][]*venue.Seat) []int {
	t.Helper()
	out := make([]int, 0, len(blocks))
	for _, b := range blocks {
		_, col, ok := g.Locate(b[0])
		require.True(t, ok)
		out = append(out, col)
	}
	return out
}

func TestFindAdjacent_SixAvailableFourCancelled(t *testing.T) {
	a, x := venue.StatusAvailable, venue.StatusCancelled
	g := buildRow(t, a, a, a, a, a, a, x, x, x, x)

	testCases := []struct {
		k      int
		starts []int
	}{
		{1, []int{0, 1, 2, 3, 4, 5}},
		{4, []int{0, 1, 2}},
		{6, []int{0}},
		{7, []int{}},
		{10, []int{}},
	}

	for _, tc := range testCases {
		blocks := FindAdjacent(g, tc.k)
		assert.Equal(t, tc.starts, starts(t, g, blocks), "k=%d", tc.k)
		for _, b := range blocks {
			assert.Len(t, b, tc.k)
		}
	}
}

func TestFindAdjacent_WindowsAreContiguous(t *testing.T) {
	a := venue.StatusAvailable
	g := buildRow(t, a, a, a, a)

	blocks := FindAdjacent(g, 2)
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		_, c0, _ := g.Locate(b[0])
		_, c1, _ := g.Locate(b[1])
		assert.Equal(t, c0+1, c1)
	}
}

func TestFindAdjacent_InvalidSizes(t *testing.T) {
	a := venue.StatusAvailable
	g := buildRow(t, a, a, a)

	assert.Empty(t, FindAdjacent(g, 0))
	assert.Empty(t, FindAdjacent(g, -2))
	assert.Empty(t, FindAdjacent(g, 4))
	assert.NotNil(t, FindAdjacent(nil, 1))
	assert.Empty(t, FindAdjacent(nil, 1))
}

func TestFindAdjacent_DoesNotWrapRows(t *testing.T) {
	g, err := New(2, 3)
	require.NoError(t, err)

	// row A: _ _ A, row B: A _ _
	g.Place(seatAt(1, 0, 2, venue.StatusAvailable), 0, 2)
	g.Place(seatAt(2, 1, 0, venue.StatusAvailable), 1, 0)

	assert.Empty(t, FindAdjacent(g, 2))
	assert.Len(t, FindAdjacent(g, 1), 2)
}

func TestFindAdjacent_GapsAndStatuses(t *testing.T) {
	g, err := New(2, 5)
	require.NoError(t, err)

	// row A: A A _ A A, row B: A S A A C
	g.Place(seatAt(1, 0, 0, venue.StatusAvailable), 0, 0)
	g.Place(seatAt(2, 0, 1, venue.StatusAvailable), 0, 1)
	g.Place(seatAt(3, 0, 3, venue.StatusAvailable), 0, 3)
	g.Place(seatAt(4, 0, 4, venue.StatusAvailable), 0, 4)
	g.Place(seatAt(5, 1, 0, venue.StatusAvailable), 1, 0)
	g.Place(seatAt(6, 1, 1, venue.StatusReserved), 1, 1)
	g.Place(seatAt(7, 1, 2, venue.StatusAvailable), 1, 2)
	g.Place(seatAt(8, 1, 3, venue.StatusAvailable), 1, 3)
	g.Place(seatAt(9, 1, 4, venue.StatusCheckedIn), 1, 4)

	blocks := FindAdjacent(g, 2)
	ids := make([][]int32, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, []int32{b[0].ID, b[1].ID})
	}
	assert.Equal(t, [][]int32{{1, 2}, {3, 4}, {7, 8}}, ids)
}

func BenchmarkFindAdjacent(b *testing.B) {
	g, err := New(40, 60)
	if err != nil {
		b.Fatal(err)
	}
	id := int32(1)
	for r := 0; r < 40; r++ {
		for c := 0; c < 60; c++ {
			st := venue.StatusAvailable
			if (r+c)%7 == 0 {
				st = venue.StatusReserved
			}
			g.Place(seatAt(id, r, c, st), r, c)
			id++
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindAdjacent(g, 4)
	}
}
