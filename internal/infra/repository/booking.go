package repository

import (
	"context"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "customer_id", "type", "status", "booking_date",
			"duration_minutes", "price", "message", "email_confirmation", "sms_reminder",
			"preferred_date", "experience_level", "number_of_players",
		).
		Values(
			b.ID(), b.CustomerID(), string(b.Type()), string(b.Status()), b.BookingDate(),
			b.DurationMinutes(), b.Price(), b.Message(), b.EmailConfirmation(), b.SMSReminder(),
			b.PreferredDate(), b.ExperienceLevel(), b.NumberOfPlayers(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// CreateTimeSlot inserts one reserved slot row. The partial unique index on
// (date, start_time) WHERE is_booked raises a duplicate-key error when the
// time is already held, which surfaces as KindDuplicateKey.
func (r *BookingRepository) CreateTimeSlot(ctx context.Context, tx db.DBTX, slot booking.TimeSlot) error {
	query, args, err := psql.Insert("time_slots").
		Columns("id", "date", "start_time", "end_time", "is_booked", "booking_id").
		Values(slot.ID(), slot.Date(), slot.StartTime().String(), slot.EndTime().String(), slot.IsBooked(), slot.BookingID()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build time slot insert", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert time slot", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findByID(ctx, r.db, id)
}

// FindByIDForUpdate locks the booking row for the duration of the caller's
// transaction so concurrent status changes serialize.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	return r.findByID(ctx, tx, id, "FOR UPDATE")
}

func (r *BookingRepository) findByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID, suffixes ...string) (*booking.Booking, error) {
	builder := psql.Select(
		"id", "customer_id", "type", "status", "booking_date",
		"duration_minutes", "price", "message", "email_confirmation", "sms_reminder",
		"preferred_date", "experience_level", "number_of_players", "created_at", "updated_at",
	).
		From("bookings").
		Where("id = ?", id)
	for _, suffix := range suffixes {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err, infra.KindDBFailure)
	}

	var (
		bookingID         uuid.UUID
		customerID        uuid.UUID
		bookingType       string
		status            string
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
	)
	err = dbtx.QueryRow(ctx, query, args...).Scan(
		&bookingID, &customerID, &bookingType, &status, &bookingDate,
		&durationMinutes, &price, &message, &emailConfirmation, &smsReminder,
		&preferredDate, &experienceLevel, &numberOfPlayers, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return booking.ReconstructBooking(
		bookingID, customerID, booking.Type(bookingType), booking.Status(status), bookingDate,
		durationMinutes, price, message, emailConfirmation, smsReminder,
		preferredDate, experienceLevel, numberOfPlayers, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	query, args, err := psql.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", nowExpr).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build status update", err, infra.KindDBFailure)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// ApplyPatch updates only the fields present in the patch.
func (r *BookingRepository) ApplyPatch(ctx context.Context, tx db.DBTX, id uuid.UUID, patch commands.BookingPatch) error {
	builder := psql.Update("bookings").
		Set("updated_at", nowExpr).
		Where("id = ?", id)

	if patch.Message != nil {
		builder = builder.Set("message", *patch.Message)
	}
	if patch.EmailConfirmation != nil {
		builder = builder.Set("email_confirmation", *patch.EmailConfirmation)
	}
	if patch.SMSReminder != nil {
		builder = builder.Set("sms_reminder", *patch.SMSReminder)
	}
	if patch.ExperienceLevel != nil {
		builder = builder.Set("experience_level", *patch.ExperienceLevel)
	}
	if patch.NumberOfPlayers != nil {
		builder = builder.Set("number_of_players", *patch.NumberOfPlayers)
	}
	if patch.PreferredDate != nil {
		builder = builder.Set("preferred_date", *patch.PreferredDate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking patch", err, infra.KindDBFailure)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to patch booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// ReleaseSlots marks the booking's slots as free so their times drop out of
// the live-slot unique index, and clears the booking link.
func (r *BookingRepository) ReleaseSlots(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) error {
	query, args, err := psql.Update("time_slots").
		Set("is_booked", false).
		Set("booking_id", nil).
		Where("booking_id = ?", bookingID).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot release", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to release time slots", err)
	}
	return nil
}

func (r *BookingRepository) DeleteSlots(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) error {
	query, args, err := psql.Delete("time_slots").
		Where("booking_id = ?", bookingID).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot delete", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to delete time slots", err)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := psql.Delete("bookings").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking delete", err, infra.KindDBFailure)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

// FindBookedSlotsByDate returns the live reservations for a calendar date.
func (r *BookingRepository) FindBookedSlotsByDate(ctx context.Context, date time.Time) ([]booking.TimeSlot, error) {
	query, args, err := psql.Select("id", "date", "start_time", "end_time", "is_booked", "booking_id").
		From("time_slots").
		Where("date = ?", date).
		Where("is_booked = true").
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query time slots", err)
	}
	defer rows.Close()

	return scanTimeSlots(rows)
}

func scanTimeSlots(rows pgx.Rows) ([]booking.TimeSlot, error) {
	var slots []booking.TimeSlot
	for rows.Next() {
		var (
			id        uuid.UUID
			date      time.Time
			startRaw  string
			endRaw    string
			isBooked  bool
			bookingID *uuid.UUID
		)
		if err := rows.Scan(&id, &date, &startRaw, &endRaw, &isBooked, &bookingID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan time slot", err)
		}

		startTime, err := schedule.ParseClockTime(startRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored start time is malformed", err)
		}
		endTime, err := schedule.ParseClockTime(endRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored end time is malformed", err)
		}

		slots = append(slots, booking.ReconstructTimeSlot(id, date, startTime, endTime, isBooked, bookingID))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read time slots", err)
	}
	return slots, nil
}
