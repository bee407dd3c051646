package readstore

import (
	"context"
	"time"

	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const bookingColumns = `b.id, b.type, b.status, b.booking_date, b.duration_minutes, b.price,
	b.message, b.email_confirmation, b.sms_reminder, b.preferred_date, b.experience_level,
	b.number_of_players, b.created_at, b.updated_at,
	c.id, c.first_name, c.last_name, c.email, c.phone`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Where("b.id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view select", err, infra.KindDBFailure)
	}

	row := r.db.QueryRow(ctx, query, args...)
	view, err := scanBookingView(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	if err := r.attachSlots(ctx, []*queries.BookingView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

// FindAll returns bookings newest first, optionally narrowed by status, type
// and booked date.
func (r *BookingReadStore) FindAll(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	builder := psql.Select(bookingColumns).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		OrderBy("b.created_at DESC", "b.id DESC")

	if filter.Status != nil {
		builder = builder.Where("b.status = ?", *filter.Status)
	}
	if filter.Type != nil {
		builder = builder.Where("b.type = ?", *filter.Type)
	}
	if filter.StartDate != nil {
		builder = builder.Where("b.booking_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		builder = builder.Where("b.booking_date <= ?", *filter.EndDate)
	}

	return r.findMany(ctx, builder)
}

// FindByUserID returns the bookings owned by a user's linked customer record.
func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	builder := psql.Select(bookingColumns).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Where("c.user_id = ?", userID).
		OrderBy("b.created_at DESC", "b.id DESC")

	return r.findMany(ctx, builder)
}

func (r *BookingReadStore) findMany(ctx context.Context, builder sq.SelectBuilder) ([]*queries.BookingView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking views", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}

	if err := r.attachSlots(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *BookingReadStore) attachSlots(ctx context.Context, views []*queries.BookingView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(views))
	byID := make(map[uuid.UUID]*queries.BookingView, len(views))
	for i, view := range views {
		ids[i] = view.ID
		byID[view.ID] = view
	}

	query, args, err := psql.Select("booking_id", "date", "start_time", "end_time").
		From("time_slots").
		Where(sq.Eq{"booking_id": ids}).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot view select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to query slot views", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID uuid.UUID
			date      time.Time
			startTime string
			endTime   string
		)
		if err := rows.Scan(&bookingID, &date, &startTime, &endTime); err != nil {
			return infra.WrapRepoErr("failed to scan slot view", err)
		}
		if view, ok := byID[bookingID]; ok {
			view.Slots = append(view.Slots, queries.BookedSlotView{
				Date:      date,
				StartTime: startTime,
				EndTime:   endTime,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read slot views", err)
	}
	return nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.Type, &view.Status, &view.BookingDate, &view.DurationMinutes, &view.Price,
		&view.Message, &view.EmailConfirmation, &view.SMSReminder, &view.PreferredDate, &view.ExperienceLevel,
		&view.NumberOfPlayers, &view.CreatedAt, &view.UpdatedAt,
		&view.Customer.ID, &view.Customer.FirstName, &view.Customer.LastName, &view.Customer.Email, &view.Customer.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
