package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" string to minutes from midnight. "24:00"
// is accepted as the exclusive end of a date so a shift may run to closing
// at midnight.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return DayEnd, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("schedule: invalid clock value %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("schedule: invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("schedule: invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(m int) string {
	if m == DayEnd {
		return "24:00"
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
