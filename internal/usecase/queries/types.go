package queries

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSlotView is one day-of-week time range inside a weekly template.
type ScheduleSlotView struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// ScheduleWeekView mirrors one weekly template. Weeks that have never been
// configured are rendered with empty dates and no slots.
type ScheduleWeekView struct {
	WeekNumber int                `json:"weekNumber"`
	StartDate  string             `json:"startDate"`
	EndDate    string             `json:"endDate"`
	TimeSlots  []ScheduleSlotView `json:"timeSlots"`
}

// ScheduleView always carries both week entries, ordered by week number.
type ScheduleView []ScheduleWeekView

// DayAvailabilityView lists the slot start times for one calendar date:
// everything the templates generate, the subset already taken, and the
// remainder open for booking.
type DayAvailabilityView struct {
	Date           string   `json:"date"`
	AllTimes       []string `json:"allTimes"`
	BookedTimes    []string `json:"bookedTimes"`
	AvailableTimes []string `json:"availableTimes"`
}

type CustomerView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
}

type BookedSlotView struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type BookingView struct {
	ID                uuid.UUID        `json:"id"`
	Type              string           `json:"type"`
	Status            string           `json:"status"`
	BookingDate       *time.Time       `json:"bookingDate"`
	DurationMinutes   int              `json:"durationMinutes"`
	Price             int              `json:"price"`
	Message           string           `json:"message"`
	EmailConfirmation bool             `json:"emailConfirmation"`
	SMSReminder       bool             `json:"smsReminder"`
	PreferredDate     *time.Time       `json:"preferredDate"`
	ExperienceLevel   *string          `json:"experienceLevel"`
	NumberOfPlayers   int              `json:"numberOfPlayers"`
	Customer          CustomerView     `json:"customer"`
	Slots             []BookedSlotView `json:"slots"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// BookingFilter narrows booking listings. Nil fields match everything.
type BookingFilter struct {
	Status    *string
	Type      *string
	StartDate *time.Time
	EndDate   *time.Time
}
