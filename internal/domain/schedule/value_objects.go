package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalidClockTime = errors.New("invalid clock time")

var clockTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ClockTime is a time of day with minute precision, independent of any date.
// The wire format is zero-padded "HH:MM", so lexicographic order on the
// string form matches chronological order. "24:00" is valid as an exclusive
// end-of-day bound: a slot starting at 23:30 ends there.
type ClockTime struct {
	minutes int
}

func ParseClockTime(value string) (ClockTime, error) {
	if !clockTimePattern.MatchString(value) {
		return ClockTime{}, ErrInvalidClockTime
	}

	hours, _ := strconv.Atoi(value[:2])
	mins, _ := strconv.Atoi(value[3:])
	if hours > 24 || mins > 59 || (hours == 24 && mins != 0) {
		return ClockTime{}, ErrInvalidClockTime
	}

	return ClockTime{minutes: hours*60 + mins}, nil
}

func NewClockTime(hours, mins int) (ClockTime, error) {
	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: hours*60 + mins}, nil
}

func (t ClockTime) Add(mins int) ClockTime {
	return ClockTime{minutes: t.minutes + mins}
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.minutes < other.minutes
}

func (t ClockTime) Minutes() int {
	return t.minutes
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// At anchors the clock time to a calendar date.
func (t ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.minutes/60, t.minutes%60, 0, 0, date.Location())
}

// DateOnly truncates a timestamp to midnight so date ranges can be compared
// without time-of-day noise.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
