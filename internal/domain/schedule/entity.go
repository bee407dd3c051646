package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekNumber = errors.New("week number must be 1 or 2")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
)

// ScheduleSlot is one recurring day-of-week availability window inside a
// weekly template. Sunday is day 0, matching time.Weekday.
type ScheduleSlot struct {
	id        uuid.UUID
	dayOfWeek time.Weekday
	startTime ClockTime
	endTime   ClockTime
}

func NewScheduleSlot(dayOfWeek int, startTime, endTime ClockTime) (ScheduleSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ScheduleSlot{}, ErrInvalidDayOfWeek
	}
	if !startTime.Before(endTime) {
		return ScheduleSlot{}, ErrInvalidTimeRange
	}

	return ScheduleSlot{
		id:        uuid.New(),
		dayOfWeek: time.Weekday(dayOfWeek),
		startTime: startTime,
		endTime:   endTime,
	}, nil
}

func ReconstructScheduleSlot(id uuid.UUID, dayOfWeek time.Weekday, startTime, endTime ClockTime) ScheduleSlot {
	return ScheduleSlot{
		id:        id,
		dayOfWeek: dayOfWeek,
		startTime: startTime,
		endTime:   endTime,
	}
}

func (s ScheduleSlot) ID() uuid.UUID          { return s.id }
func (s ScheduleSlot) DayOfWeek() time.Weekday { return s.dayOfWeek }
func (s ScheduleSlot) StartTime() ClockTime   { return s.startTime }
func (s ScheduleSlot) EndTime() ClockTime     { return s.endTime }

// WeeklySchedule is an admin-defined recurring availability template for a
// numbered week (1 or 2), valid over a concrete date window. At most one
// active template exists per week number; replacing one is an upsert keyed
// by week number.
type WeeklySchedule struct {
	id         uuid.UUID
	weekNumber int
	startDate  time.Time
	endDate    time.Time
	slots      []ScheduleSlot
}

func NewWeeklySchedule(weekNumber int, startDate, endDate time.Time, slots []ScheduleSlot) (*WeeklySchedule, error) {
	if weekNumber != 1 && weekNumber != 2 {
		return nil, ErrInvalidWeekNumber
	}

	startDate = DateOnly(startDate)
	endDate = DateOnly(endDate)
	if !startDate.Before(endDate) {
		return nil, ErrInvalidDateRange
	}

	return &WeeklySchedule{
		id:         uuid.New(),
		weekNumber: weekNumber,
		startDate:  startDate,
		endDate:    endDate,
		slots:      slots,
	}, nil
}

func ReconstructWeeklySchedule(id uuid.UUID, weekNumber int, startDate, endDate time.Time, slots []ScheduleSlot) *WeeklySchedule {
	return &WeeklySchedule{
		id:         id,
		weekNumber: weekNumber,
		startDate:  DateOnly(startDate),
		endDate:    DateOnly(endDate),
		slots:      slots,
	}
}

func (w *WeeklySchedule) ID() uuid.UUID        { return w.id }
func (w *WeeklySchedule) WeekNumber() int      { return w.weekNumber }
func (w *WeeklySchedule) StartDate() time.Time { return w.startDate }
func (w *WeeklySchedule) EndDate() time.Time   { return w.endDate }
func (w *WeeklySchedule) Slots() []ScheduleSlot { return w.slots }

// Covers reports whether the template's validity window contains the given
// date. Both bounds are inclusive.
func (w *WeeklySchedule) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(w.startDate) && !d.After(w.endDate)
}
