package entity

import "fmt"

// All engine times are minutes since midnight. Clock strings ("HH:MM")
// exist only at the DTO boundary.

// MinutesToClock formats minutes since midnight as "HH:MM".
func MinutesToClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// ClockToMinutes parses "HH:MM" into minutes since midnight.
func ClockToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return h*60 + m, nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return max(s1, s2) < min(e1, e2)
}
