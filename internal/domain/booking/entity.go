package booking

import (
	"errors"
	"time"

	"fairway-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// TimeSlot is a concrete, date-specific half-hour unit created at booking
// time. Only committed rows represent actual reservations; free capacity is
// computed on the fly by the resolver.
type TimeSlot struct {
	id        uuid.UUID
	date      time.Time
	startTime schedule.ClockTime
	endTime   schedule.ClockTime
	isBooked  bool
	bookingID *uuid.UUID
}

// NewBookedTimeSlot reserves the half-hour unit starting at startTime for a
// booking. The end time is derived, rolling over the hour at minute 60.
func NewBookedTimeSlot(date time.Time, startTime schedule.ClockTime, bookingID uuid.UUID) TimeSlot {
	id := bookingID
	return TimeSlot{
		id:        uuid.New(),
		date:      schedule.DateOnly(date),
		startTime: startTime,
		endTime:   startTime.Add(schedule.SlotDurationMinutes),
		isBooked:  true,
		bookingID: &id,
	}
}

func ReconstructTimeSlot(id uuid.UUID, date time.Time, startTime, endTime schedule.ClockTime, isBooked bool, bookingID *uuid.UUID) TimeSlot {
	return TimeSlot{
		id:        id,
		date:      schedule.DateOnly(date),
		startTime: startTime,
		endTime:   endTime,
		isBooked:  isBooked,
		bookingID: bookingID,
	}
}

func (s TimeSlot) ID() uuid.UUID                 { return s.id }
func (s TimeSlot) Date() time.Time               { return s.date }
func (s TimeSlot) StartTime() schedule.ClockTime { return s.startTime }
func (s TimeSlot) EndTime() schedule.ClockTime   { return s.endTime }
func (s TimeSlot) IsBooked() bool                { return s.isBooked }
func (s TimeSlot) BookingID() *uuid.UUID         { return s.bookingID }

// Preferences carries the free-form wishes of an accompanied booking, which
// reserves no simulator slots.
type Preferences struct {
	ExperienceLevel *string
	PreferredDate   *time.Time
	NumberOfPlayers int
	Message         string
}

type Booking struct {
	id                uuid.UUID
	customerID        uuid.UUID
	bookingType       Type
	status            Status
	bookingDate       *time.Time
	durationMinutes   int
	price             int
	message           string
	emailConfirmation bool
	smsReminder       bool
	preferredDate     *time.Time
	experienceLevel   *string
	numberOfPlayers   int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewIndoorBooking creates a pending simulator booking priced from the
// validated selection. The caller reserves the selection's slots in the same
// transaction.
func NewIndoorBooking(customerID uuid.UUID, date time.Time, sel Selection, message string, emailConfirmation, smsReminder bool) *Booking {
	d := schedule.DateOnly(date)
	return &Booking{
		id:                uuid.New(),
		customerID:        customerID,
		bookingType:       TypeIndoor,
		status:            StatusPending,
		bookingDate:       &d,
		durationMinutes:   sel.DurationMinutes,
		price:             sel.Price,
		message:           message,
		emailConfirmation: emailConfirmation,
		smsReminder:       smsReminder,
		numberOfPlayers:   1,
	}
}

// NewAccompaniedBooking creates a pending on-course session request carrying
// only preferences.
func NewAccompaniedBooking(customerID uuid.UUID, prefs Preferences) *Booking {
	players := prefs.NumberOfPlayers
	if players < 1 {
		players = 1
	}
	return &Booking{
		id:                uuid.New(),
		customerID:        customerID,
		bookingType:       TypeAccompanied,
		status:            StatusPending,
		message:           prefs.Message,
		emailConfirmation: true,
		preferredDate:     prefs.PreferredDate,
		experienceLevel:   prefs.ExperienceLevel,
		numberOfPlayers:   players,
	}
}

func ReconstructBooking(
	id, customerID uuid.UUID,
	bookingType Type,
	status Status,
	bookingDate *time.Time,
	durationMinutes, price int,
	message string,
	emailConfirmation, smsReminder bool,
	preferredDate *time.Time,
	experienceLevel *string,
	numberOfPlayers int,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		customerID:        customerID,
		bookingType:       bookingType,
		status:            status,
		bookingDate:       bookingDate,
		durationMinutes:   durationMinutes,
		price:             price,
		message:           message,
		emailConfirmation: emailConfirmation,
		smsReminder:       smsReminder,
		preferredDate:     preferredDate,
		experienceLevel:   experienceLevel,
		numberOfPlayers:   numberOfPlayers,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// TransitionTo moves the booking to a new status, enforcing the lifecycle
// legality rules.
func (b *Booking) TransitionTo(status Status) error {
	if !status.IsValid() {
		return ErrInvalidTransition
	}
	if !CanTransition(b.bookingType, b.status, status) {
		return ErrInvalidTransition
	}
	b.status = status
	return nil
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) CustomerID() uuid.UUID    { return b.customerID }
func (b *Booking) Type() Type               { return b.bookingType }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) BookingDate() *time.Time  { return b.bookingDate }
func (b *Booking) DurationMinutes() int     { return b.durationMinutes }
func (b *Booking) Price() int               { return b.price }
func (b *Booking) Message() string          { return b.message }
func (b *Booking) EmailConfirmation() bool  { return b.emailConfirmation }
func (b *Booking) SMSReminder() bool        { return b.smsReminder }
func (b *Booking) PreferredDate() *time.Time { return b.preferredDate }
func (b *Booking) ExperienceLevel() *string { return b.experienceLevel }
func (b *Booking) NumberOfPlayers() int     { return b.numberOfPlayers }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
