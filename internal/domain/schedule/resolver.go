package schedule

import (
	"sort"
	"time"
)

// SlotDurationMinutes is the length of every bookable session unit.
const SlotDurationMinutes = 30

// AvailableTimes expands the weekly templates into the ordered set of
// half-hour start times offered on the target date.
//
// A template contributes when its validity window contains the date; each of
// its slots matching the date's weekday yields every boundary t with
// startTime <= t < endTime, stepping by 30 minutes from startTime. The
// boundary equal to endTime is excluded since a session starting there would
// overrun the window. Overlapping slots are deduplicated, and output order is
// ascending regardless of template order, so resolution is stable across
// calls.
func AvailableTimes(schedules []*WeeklySchedule, date time.Time) []ClockTime {
	dayOfWeek := date.Weekday()
	seen := make(map[int]bool)
	var times []ClockTime

	for _, sched := range schedules {
		if sched == nil || !sched.Covers(date) {
			continue
		}
		for _, slot := range sched.Slots() {
			if slot.DayOfWeek() != dayOfWeek {
				continue
			}
			for t := slot.StartTime(); t.Before(slot.EndTime()); t = t.Add(SlotDurationMinutes) {
				if !seen[t.Minutes()] {
					seen[t.Minutes()] = true
					times = append(times, t)
				}
			}
		}
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})

	return times
}
