package offer

import (
	"fmt"
	"strings"
	"time"
)

// ParseDurationMinutes parses an ISO-8601 duration of the form
// PT[nH][mM] into total whole minutes. Malformed or empty input
// returns 0 so a missing duration never breaks filtering or sorting.
func ParseDurationMinutes(s string) int {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0
	}

	var total, n int
	var sawDigit bool

	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			sawDigit = true
		case c == 'H' && sawDigit:
			total += n * 60
			n, sawDigit = 0, false
		case c == 'M' && sawDigit:
			total += n
			n, sawDigit = 0, false
		default:
			return 0
		}
	}

	if sawDigit {
		// trailing number without a unit
		return 0
	}

	return total
}

// FormatDuration renders minutes as a display string.
// Example: 125 -> "2h 5m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// TimeSlotOf maps an hour of day [0,23] to its slot. The four slots
// partition the full day: morning [5,12), afternoon [12,17),
// evening [17,21), night [21,24) and [0,5).
func TimeSlotOf(hour int) TimeSlot {
	switch {
	case hour >= 5 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 21:
		return SlotEvening
	default:
		return SlotNight
	}
}

// DepartureHour extracts the local hour from an ISO-8601 timestamp.
// Returns ok=false when the timestamp does not parse.
func DepartureHour(at string) (int, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, at); err == nil {
			return t.Hour(), true
		}
	}

	return 0, false
}

// DepartureUnix converts an ISO-8601 timestamp to a sortable Unix
// value. Unparseable timestamps map to 0 so the order stays total,
// sorting them as earliest.
func DepartureUnix(at string) int64 {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, at); err == nil {
			return t.Unix()
		}
	}

	return 0
}
