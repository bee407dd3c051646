package commands

import (
	"context"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/customer"
	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleRepository interface {
	Upsert(ctx context.Context, tx db.DBTX, sched *schedule.WeeklySchedule) (uuid.UUID, error)
	FindAll(ctx context.Context) ([]*schedule.WeeklySchedule, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	CreateTimeSlot(ctx context.Context, tx db.DBTX, slot booking.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	ApplyPatch(ctx context.Context, tx db.DBTX, id uuid.UUID, patch BookingPatch) error
	ReleaseSlots(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) error
	DeleteSlots(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindBookedSlotsByDate(ctx context.Context, date time.Time) ([]booking.TimeSlot, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *customer.Customer) error
	FindByEmail(ctx context.Context, dbtx db.DBTX, email customer.Email) (*customer.Customer, error)
	LinkUser(ctx context.Context, tx db.DBTX, customerID, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

// CacheInvalidator drops cached read models whose keys contain the pattern.
type CacheInvalidator interface {
	InvalidatePattern(ctx context.Context, pattern string) (int64, error)
}

// MetricsRecorder receives booking lifecycle events.
type MetricsRecorder interface {
	BookingCreated(bookingType string)
	BookingCancelled()
	BookingConflict()
}

type ScheduleSlotInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type WeekScheduleInput struct {
	WeekNumber int
	StartDate  time.Time
	EndDate    time.Time
	Slots      []ScheduleSlotInput
}

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type IndoorBookingInput struct {
	Date              time.Time
	SelectedTimes     []string
	Customer          CustomerInput
	Message           string
	EmailConfirmation bool
	SMSReminder       bool
	UserID            *uuid.UUID
}

type AccompaniedBookingInput struct {
	Customer        CustomerInput
	ExperienceLevel *string
	PreferredDate   *time.Time
	NumberOfPlayers int
	Message         string
	UserID          *uuid.UUID
}

// BookingPatch carries the fields of a partial update. Nil means "leave as
// is"; a non-nil pointer overwrites, including overwriting with zero values.
type BookingPatch struct {
	Message           *string
	EmailConfirmation *bool
	SMSReminder       *bool
	ExperienceLevel   *string
	NumberOfPlayers   *int
	PreferredDate     *time.Time
}

func (p BookingPatch) IsEmpty() bool {
	return p.Message == nil &&
		p.EmailConfirmation == nil &&
		p.SMSReminder == nil &&
		p.ExperienceLevel == nil &&
		p.NumberOfPlayers == nil &&
		p.PreferredDate == nil
}
