package venue

import (
	"fmt"
	"strings"
)

// SeatStatus is the lifecycle state of a seat. It is persisted as int32.
type SeatStatus int32

const (
	StatusAvailable SeatStatus = iota
	StatusReserved
	StatusCheckedIn
	StatusCancelled
	StatusExpired
)

var statusNames = map[SeatStatus]string{
	StatusAvailable: "available",
	StatusReserved:  "reserved",
	StatusCheckedIn: "checked_in",
	StatusCancelled: "cancelled",
	StatusExpired:   "expired",
}

// transitions lists the allowed target states for each state. Nothing
// moves back to Available.
var transitions = map[SeatStatus][]SeatStatus{
	StatusAvailable: {StatusReserved, StatusCancelled, StatusExpired},
	StatusReserved:  {StatusCheckedIn, StatusExpired},
}

// Valid reports whether s is a declared status
func (s SeatStatus) Valid() bool {
	return s >= StatusAvailable && s <= StatusExpired
}

func (s SeatStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SeatStatus(%d)", int32(s))
}

// CanTransition reports whether a seat in state s may move to next
func (s SeatStatus) CanTransition(next SeatStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Glyph returns the seating plan symbol for s
func (s SeatStatus) Glyph() string {
	switch s {
	case StatusAvailable:
		return "[A]"
	case StatusReserved:
		return "[S]"
	case StatusCheckedIn:
		return "[C]"
	default:
		return "[X]"
	}
}

// ParseSeatStatus accepts the names returned by String, plus "sold" and
// "checkedin", case-insensitively.
func ParseSeatStatus(s string) (SeatStatus, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "sold":
		return StatusReserved, nil
	case "checkedin", "checked-in":
		return StatusCheckedIn, nil
	}
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown seat status %q", s)
}

// MarshalText encodes the status by name for JSON and YAML
func (s SeatStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid seat status %d", int32(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *SeatStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSeatStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
