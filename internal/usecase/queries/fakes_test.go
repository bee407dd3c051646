//go:build unit

package queries_test

import (
	"context"
	"encoding/json"
	"time"

	"fairway-booking/internal/domain/booking"
	"fairway-booking/internal/domain/customer"
	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// fakeViewCache is an in-memory stand-in for the Redis view cache. Values
// round-trip through JSON the same way the real cache serializes them.
type fakeViewCache struct {
	store  map[string][]byte
	getErr error
	setErr error
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{store: map[string][]byte{}}
}

func (f *fakeViewCache) Get(_ context.Context, key string, dest any) error {
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.store[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeViewCache) Set(_ context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

type fakeCacheMetrics struct {
	hits   int
	misses int
}

func (f *fakeCacheMetrics) CacheHit()  { f.hits++ }
func (f *fakeCacheMetrics) CacheMiss() { f.misses++ }

type fakeScheduleRepo struct {
	schedules []*schedule.WeeklySchedule
	err       error
	calls     int
}

func (f *fakeScheduleRepo) FindAll(_ context.Context) ([]*schedule.WeeklySchedule, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules, nil
}

type fakeBookingViewRepo struct {
	byID      map[uuid.UUID]*queries.BookingView
	all       []*queries.BookingView
	byUser    []*queries.BookingView
	findErr   error
	allCalls  int
	userCalls int
}

func (f *fakeBookingViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byID[id], nil
}

func (f *fakeBookingViewRepo) FindAll(_ context.Context, _ queries.BookingFilter) ([]*queries.BookingView, error) {
	f.allCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.all, nil
}

func (f *fakeBookingViewRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.BookingView, error) {
	f.userCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byUser, nil
}

type fakeBookedSlotRepo struct {
	slots []booking.TimeSlot
	err   error
}

func (f *fakeBookedSlotRepo) FindBookedSlotsByDate(_ context.Context, _ time.Time) ([]booking.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fakeCustomerReadRepo struct {
	customer *customer.Customer
	err      error
}

func (f *fakeCustomerReadRepo) FindByUserID(_ context.Context, _ uuid.UUID) (*customer.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}
