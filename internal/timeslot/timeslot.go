// Package timeslot handles "HH:MM" clock strings and minute-offset
// arithmetic for day timelines. All intervals are half-open: a slot
// ending at 09:30 does not overlap one starting at 09:30.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat indicates a clock or date string could not be parsed.
var ErrInvalidFormat = errors.New("invalid time format")

const minutesPerDay = 24 * 60

// ToMinutes converts an "HH:MM" string to minutes since midnight, in [0, 1440).
func ToMinutes(clock string) (int, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	mins, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	total := hours*60 + mins
	if hours < 0 || mins < 0 || mins > 59 || total >= minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	return total, nil
}

// ToMinutesUnbounded parses an "HH:MM" string without the within-a-day
// bound. End times computed by FromMinutes can run past midnight (a 60
// minute slot starting at 23:30 ends at "24:30") and still need to be
// read back as minute offsets.
func ToMinutesUnbounded(clock string) (int, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	mins, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	if hours < 0 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}
	return hours*60 + mins, nil
}

// FromMinutes formats a minute offset as a zero-padded "HH:MM" string.
// Offsets past midnight are not wrapped; callers that need the value to
// stay within a day must bound it themselves.
func FromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes returns clock advanced by the given number of minutes.
func AddMinutes(clock string, minutes int) (string, error) {
	start, err := ToMinutes(clock)
	if err != nil {
		return "", err
	}
	return FromMinutes(start + minutes), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not count.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// MinutesOfDay returns the minutes elapsed since local midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

const dateLayout = "2006-01-02"

// DateKey formats a time as the local-calendar "YYYY-MM-DD" key used to
// identify day schedules.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate validates a "YYYY-MM-DD" date key.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, date)
	}
	return t, nil
}

// FormatRemaining renders a minute count as a short countdown label.
func FormatRemaining(minutes int) string {
	if minutes < 0 {
		return "time passed"
	}
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm left", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh left", hours)
	default:
		return fmt.Sprintf("%dm left", mins)
	}
}
