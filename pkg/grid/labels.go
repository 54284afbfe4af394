package grid

import (
	"strconv"
	"strings"

	"github.com/ssargent/venuedb/pkg/venue"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RowLabel returns the display label of a zero-based row index: 0-25 are
// A-Z, 26 is AA, 27 is AB and so on through ZZ at 701. Negative indexes have
// no label.
func RowLabel(row int) string {
	if row < 0 {
		return ""
	}
	var b []byte
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, letters[(n-1)%26])
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ParseRowLabel is the inverse of RowLabel. It is case-insensitive.
func ParseRowLabel(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" || len(label) > 6 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, true
}

// ColLabel returns the 1-based column number of a zero-based column index
func ColLabel(col int) string {
	return strconv.Itoa(col + 1)
}

// ParseColLabel is the inverse of ColLabel
func ParseColLabel(label string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// Position resolves a seat's labels to a zero-based grid position
func Position(s *venue.Seat) (row, col int, ok bool) {
	row, ok = ParseRowLabel(s.RowLabel)
	if !ok {
		return 0, 0, false
	}
	col, ok = ParseColLabel(s.ColLabel)
	if !ok {
		return 0, 0, false
	}
	return row, col, true
}
