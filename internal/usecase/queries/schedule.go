package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

var ErrScheduleReadFailed = errs.New("failed to read schedule")

// ViewCache stores serialized read models. A Get that misses returns
// cache.ErrMiss.
type ViewCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

type CacheMetrics interface {
	CacheHit()
	CacheMiss()
}

type ScheduleReadRepo interface {
	FindAll(ctx context.Context) ([]*schedule.WeeklySchedule, error)
}

type ScheduleQueries interface {
	GetSchedule(ctx context.Context) (*ScheduleView, error)
}

type scheduleQueriesImpl struct {
	repo    ScheduleReadRepo
	cache   ViewCache
	metrics CacheMetrics
}

func NewScheduleQueries(repo ScheduleReadRepo, viewCache ViewCache, metrics CacheMetrics) ScheduleQueries {
	return &scheduleQueriesImpl{
		repo:    repo,
		cache:   viewCache,
		metrics: metrics,
	}
}

// GetSchedule always returns both week templates. A week that has never been
// configured is rendered with empty date strings and no slots.
func (q *scheduleQueriesImpl) GetSchedule(ctx context.Context) (*ScheduleView, error) {
	const key = "schedule:all"

	var cached ScheduleView
	err := q.cache.Get(ctx, key, &cached)
	if err == nil {
		q.metrics.CacheHit()
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("schedule cache read failed", "error", err)
	}
	q.metrics.CacheMiss()

	schedules, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrScheduleReadFailed)
	}

	view := buildScheduleView(schedules)
	if err := q.cache.Set(ctx, key, view); err != nil {
		slog.Warn("schedule cache write failed", "error", err)
	}
	return view, nil
}

func buildScheduleView(schedules []*schedule.WeeklySchedule) *ScheduleView {
	view := ScheduleView{
		{WeekNumber: 1, TimeSlots: []ScheduleSlotView{}},
		{WeekNumber: 2, TimeSlots: []ScheduleSlotView{}},
	}

	for _, sched := range schedules {
		week := buildScheduleWeekView(sched)
		switch sched.WeekNumber() {
		case 1:
			view[0] = week
		case 2:
			view[1] = week
		}
	}
	return &view
}

func buildScheduleWeekView(sched *schedule.WeeklySchedule) ScheduleWeekView {
	slots := make([]ScheduleSlotView, 0, len(sched.Slots()))
	for _, slot := range sched.Slots() {
		slots = append(slots, ScheduleSlotView{
			ID:        slot.ID(),
			DayOfWeek: int(slot.DayOfWeek()),
			StartTime: slot.StartTime().String(),
			EndTime:   slot.EndTime().String(),
		})
	}
	return ScheduleWeekView{
		WeekNumber: sched.WeekNumber(),
		StartDate:  sched.StartDate().Format(dateLayout),
		EndDate:    sched.EndDate().Format(dateLayout),
		TimeSlots:  slots,
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
