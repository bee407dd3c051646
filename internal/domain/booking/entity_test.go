//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSelection(t *testing.T, starts ...string) booking.Selection {
	t.Helper()
	times := clockTimes(t, starts...)
	sel, err := booking.NewSelection(times, times)
	require.NoError(t, err)
	return sel
}

func TestNewBookedTimeSlot(t *testing.T) {
	bookingID := uuid.New()
	date := time.Date(2026, 1, 5, 15, 20, 0, 0, time.UTC)

	t.Run("reserves the half hour", func(t *testing.T) {
		slot := booking.NewBookedTimeSlot(date, clockTimes(t, "09:30")[0], bookingID)

		assert.True(t, slot.IsBooked())
		require.NotNil(t, slot.BookingID())
		assert.Equal(t, bookingID, *slot.BookingID())
		assert.Equal(t, "09:30", slot.StartTime().String())
		assert.Equal(t, "10:00", slot.EndTime().String())
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), slot.Date())
	})

	t.Run("last slot of the day ends at midnight and survives a reparse", func(t *testing.T) {
		slot := booking.NewBookedTimeSlot(date, clockTimes(t, "23:30")[0], bookingID)

		assert.Equal(t, "24:00", slot.EndTime().String())

		// The end time is persisted as text, so its string form must parse
		// back when the row is read.
		reparsed, err := schedule.ParseClockTime(slot.EndTime().String())
		require.NoError(t, err)
		assert.Equal(t, slot.EndTime(), reparsed)
	})
}

func TestNewIndoorBooking(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sel := makeSelection(t, "09:00", "09:30")

	b := booking.NewIndoorBooking(customerID, date, sel, "first visit", true, false)

	assert.Equal(t, booking.TypeIndoor, b.Type())
	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, customerID, b.CustomerID())
	require.NotNil(t, b.BookingDate())
	assert.Equal(t, date, *b.BookingDate())
	assert.Equal(t, 60, b.DurationMinutes())
	assert.Equal(t, 70, b.Price())
	assert.Equal(t, "first visit", b.Message())
	assert.True(t, b.EmailConfirmation())
	assert.False(t, b.SMSReminder())
	assert.Equal(t, 1, b.NumberOfPlayers())
}

func TestNewAccompaniedBooking(t *testing.T) {
	customerID := uuid.New()
	level := "INTERMEDIATE"
	preferred := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	t.Run("carries preferences and reserves nothing", func(t *testing.T) {
		b := booking.NewAccompaniedBooking(customerID, booking.Preferences{
			ExperienceLevel: &level,
			PreferredDate:   &preferred,
			NumberOfPlayers: 3,
			Message:         "group outing",
		})

		assert.Equal(t, booking.TypeAccompanied, b.Type())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Nil(t, b.BookingDate())
		assert.Zero(t, b.Price())
		assert.Equal(t, 3, b.NumberOfPlayers())
		require.NotNil(t, b.ExperienceLevel())
		assert.Equal(t, level, *b.ExperienceLevel())
		require.NotNil(t, b.PreferredDate())
		assert.Equal(t, preferred, *b.PreferredDate())
	})

	t.Run("player count floored at one", func(t *testing.T) {
		b := booking.NewAccompaniedBooking(customerID, booking.Preferences{NumberOfPlayers: 0})
		assert.Equal(t, 1, b.NumberOfPlayers())
	})
}

func TestTransitionTo(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("legal chain", func(t *testing.T) {
		b := booking.NewIndoorBooking(customerID, date, makeSelection(t, "09:00"), "", true, false)

		require.NoError(t, b.TransitionTo(booking.StatusConfirmed))
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.TransitionTo(booking.StatusCancelled))
		assert.True(t, b.IsCancelled())
	})

	t.Run("illegal transition leaves status untouched", func(t *testing.T) {
		b := booking.NewIndoorBooking(customerID, date, makeSelection(t, "09:00"), "", true, false)

		err := b.TransitionTo(booking.StatusCompleted)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		b := booking.NewIndoorBooking(customerID, date, makeSelection(t, "09:00"), "", true, false)

		err := b.TransitionTo(booking.Status("ARCHIVED"))
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("accompanied booking can complete", func(t *testing.T) {
		b := booking.NewAccompaniedBooking(customerID, booking.Preferences{NumberOfPlayers: 2})

		require.NoError(t, b.TransitionTo(booking.StatusConfirmed))
		require.NoError(t, b.TransitionTo(booking.StatusCompleted))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})
}
