package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/customer"
	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errs.New("booking not found")
	ErrCustomerNotFound  = errs.New("no customer linked to user")
	ErrBookingReadFailed = errs.New("failed to read bookings")
)

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
}

type BookedSlotReadRepo interface {
	FindBookedSlotsByDate(ctx context.Context, date time.Time) ([]booking.TimeSlot, error)
}

type CustomerReadRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*customer.Customer, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	GetDayAvailability(ctx context.Context, date time.Time) (*DayAvailabilityView, error)
}

type bookingQueriesImpl struct {
	views     BookingViewRepo
	slots     BookedSlotReadRepo
	schedules ScheduleReadRepo
	customers CustomerReadRepo
	cache     ViewCache
	metrics   CacheMetrics
}

func NewBookingQueries(
	views BookingViewRepo,
	slots BookedSlotReadRepo,
	schedules ScheduleReadRepo,
	customers CustomerReadRepo,
	viewCache ViewCache,
	metrics CacheMetrics,
) BookingQueries {
	return &bookingQueriesImpl{
		views:     views,
		slots:     slots,
		schedules: schedules,
		customers: customers,
		cache:     viewCache,
		metrics:   metrics,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.views.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter) ([]*BookingView, error) {
	key := listCacheKey(filter)

	var cached []*BookingView
	err := q.cache.Get(ctx, key, &cached)
	if err == nil {
		q.metrics.CacheHit()
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("booking list cache read failed", "error", err)
	}
	q.metrics.CacheMiss()

	views, err := q.views.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}
	if views == nil {
		views = []*BookingView{}
	}
	if err := q.cache.Set(ctx, key, views); err != nil {
		slog.Warn("booking list cache write failed", "error", err)
	}
	return views, nil
}

func listCacheKey(filter BookingFilter) string {
	status, bookingType, start, end := "", "", "", ""
	if filter.Status != nil {
		status = *filter.Status
	}
	if filter.Type != nil {
		bookingType = *filter.Type
	}
	if filter.StartDate != nil {
		start = formatDate(*filter.StartDate)
	}
	if filter.EndDate != nil {
		end = formatDate(*filter.EndDate)
	}
	return fmt.Sprintf("bookings:list:%s:%s:%s:%s", status, bookingType, start, end)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	if _, err := q.customers.FindByUserID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCustomerNotFound)
		}
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}

	views, err := q.views.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}
	if views == nil {
		views = []*BookingView{}
	}
	return views, nil
}

// GetDayAvailability resolves the weekly templates for a date into half-hour
// start times and splits them into free and taken.
func (q *bookingQueriesImpl) GetDayAvailability(ctx context.Context, date time.Time) (*DayAvailabilityView, error) {
	key := fmt.Sprintf("availability:%s", formatDate(date))

	var cached DayAvailabilityView
	err := q.cache.Get(ctx, key, &cached)
	if err == nil {
		q.metrics.CacheHit()
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("availability cache read failed", "error", err)
	}
	q.metrics.CacheMiss()

	schedules, err := q.schedules.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}
	bookedSlots, err := q.slots.FindBookedSlotsByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingReadFailed)
	}

	candidates := schedule.AvailableTimes(schedules, date)
	booked := make([]schedule.ClockTime, 0, len(bookedSlots))
	for _, slot := range bookedSlots {
		booked = append(booked, slot.StartTime())
	}

	free := booking.Bookable(candidates, booked)

	view := &DayAvailabilityView{
		Date:           formatDate(date),
		AllTimes:       clockTimesToStrings(candidates),
		BookedTimes:    clockTimesToStrings(booked),
		AvailableTimes: clockTimesToStrings(free),
	}
	if err := q.cache.Set(ctx, key, view); err != nil {
		slog.Warn("availability cache write failed", "error", err)
	}
	return view, nil
}

func clockTimesToStrings(times []schedule.ClockTime) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.String())
	}
	return out
}
