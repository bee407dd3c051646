//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/pkg/errs"
	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWeek(t *testing.T, week int, start, end time.Time, dayOfWeek int, startTime, endTime string) *schedule.WeeklySchedule {
	t.Helper()
	st, err := schedule.ParseClockTime(startTime)
	require.NoError(t, err)
	et, err := schedule.ParseClockTime(endTime)
	require.NoError(t, err)
	slot, err := schedule.NewScheduleSlot(dayOfWeek, st, et)
	require.NoError(t, err)
	sched, err := schedule.NewWeeklySchedule(week, start, end, []schedule.ScheduleSlot{slot})
	require.NoError(t, err)
	return sched
}

func TestGetSchedule(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	t.Run("renders both weeks", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedules: []*schedule.WeeklySchedule{
			buildWeek(t, 1, start, end, 1, "09:00", "12:00"),
			buildWeek(t, 2, start.AddDate(0, 0, 7), end.AddDate(0, 0, 7), 5, "14:00", "18:00"),
		}}
		metrics := &fakeCacheMetrics{}
		q := queries.NewScheduleQueries(repo, newFakeViewCache(), metrics)

		view, err := q.GetSchedule(ctx)
		require.NoError(t, err)

		weeks := *view
		require.Len(t, weeks, 2)
		assert.Equal(t, 1, weeks[0].WeekNumber)
		assert.Equal(t, "2026-01-05", weeks[0].StartDate)
		assert.Equal(t, "2026-01-11", weeks[0].EndDate)
		require.Len(t, weeks[0].TimeSlots, 1)
		slot := weeks[0].TimeSlots[0]
		assert.NotEqual(t, uuid.Nil, slot.ID)
		assert.Equal(t, 1, slot.DayOfWeek)
		assert.Equal(t, "09:00", slot.StartTime)
		assert.Equal(t, "12:00", slot.EndTime)

		assert.Equal(t, 2, weeks[1].WeekNumber)
		assert.Equal(t, "2026-01-12", weeks[1].StartDate)
		require.Len(t, weeks[1].TimeSlots, 1)

		assert.Equal(t, 1, metrics.misses)
		assert.Equal(t, 0, metrics.hits)
	})

	t.Run("missing weeks rendered empty, never omitted", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedules: []*schedule.WeeklySchedule{
			buildWeek(t, 1, start, end, 1, "09:00", "12:00"),
		}}
		q := queries.NewScheduleQueries(repo, newFakeViewCache(), &fakeCacheMetrics{})

		view, err := q.GetSchedule(ctx)
		require.NoError(t, err)

		weeks := *view
		require.Len(t, weeks, 2)
		assert.Equal(t, 2, weeks[1].WeekNumber)
		assert.Empty(t, weeks[1].StartDate)
		assert.Empty(t, weeks[1].EndDate)
		assert.Empty(t, weeks[1].TimeSlots)
	})

	t.Run("second read served from cache", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedules: []*schedule.WeeklySchedule{
			buildWeek(t, 1, start, end, 1, "09:00", "12:00"),
		}}
		metrics := &fakeCacheMetrics{}
		q := queries.NewScheduleQueries(repo, newFakeViewCache(), metrics)

		first, err := q.GetSchedule(ctx)
		require.NoError(t, err)
		second, err := q.GetSchedule(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.calls)
		assert.Equal(t, 1, metrics.hits)
		assert.Equal(t, 1, metrics.misses)
	})

	t.Run("cache read failures fall through to the store", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		viewCache := newFakeViewCache()
		viewCache.getErr = errors.New("redis gone")
		q := queries.NewScheduleQueries(repo, viewCache, &fakeCacheMetrics{})

		view, err := q.GetSchedule(ctx)
		require.NoError(t, err)
		require.Len(t, *view, 2)
		assert.Equal(t, 1, (*view)[0].WeekNumber)
		assert.Equal(t, 1, repo.calls)
	})

	t.Run("store failures surface as read errors", func(t *testing.T) {
		repo := &fakeScheduleRepo{err: errors.New("connection refused")}
		q := queries.NewScheduleQueries(repo, newFakeViewCache(), &fakeCacheMetrics{})

		_, err := q.GetSchedule(ctx)
		assert.True(t, errs.Is(err, queries.ErrScheduleReadFailed))
	})
}
