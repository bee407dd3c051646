package commands

import (
	"context"
	"log/slog"

	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra/db"
	"fairway-booking/internal/pkg/errs"
	"fairway-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrScheduleValidation  = errs.New("schedule validation failed")
	ErrScheduleWriteFailed = errs.New("failed to write schedule")
)

type ScheduleCommands interface {
	UpsertWeeklySchedule(ctx context.Context, input WeekScheduleInput) (uuid.UUID, error)
}

type scheduleUseCaseImpl struct {
	scheduleRepo ScheduleRepository
	pool         *pgxpool.Pool
	cache        CacheInvalidator
}

func NewScheduleUseCase(scheduleRepo ScheduleRepository, pool *pgxpool.Pool, invalidator CacheInvalidator) ScheduleCommands {
	return &scheduleUseCaseImpl{
		scheduleRepo: scheduleRepo,
		pool:         pool,
		cache:        invalidator,
	}
}

// UpsertWeeklySchedule replaces the template for one week number and drops
// every cached read model derived from it.
func (s *scheduleUseCaseImpl) UpsertWeeklySchedule(ctx context.Context, input WeekScheduleInput) (uuid.UUID, error) {
	sched, err := buildWeeklySchedule(input)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrScheduleValidation)
	}

	id, err := shared.RunInTx(ctx, s.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return s.scheduleRepo.Upsert(ctx, tx, sched)
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrScheduleWriteFailed)
	}

	s.invalidate(ctx, "schedule")
	s.invalidate(ctx, "availability")
	return id, nil
}

func (s *scheduleUseCaseImpl) invalidate(ctx context.Context, pattern string) {
	if _, err := s.cache.InvalidatePattern(ctx, pattern); err != nil {
		slog.Warn("cache invalidation failed", "pattern", pattern, "error", err)
	}
}

func buildWeeklySchedule(input WeekScheduleInput) (*schedule.WeeklySchedule, error) {
	slots := make([]schedule.ScheduleSlot, 0, len(input.Slots))
	for _, slotInput := range input.Slots {
		startTime, err := schedule.ParseClockTime(slotInput.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := schedule.ParseClockTime(slotInput.EndTime)
		if err != nil {
			return nil, err
		}
		slot, err := schedule.NewScheduleSlot(slotInput.DayOfWeek, startTime, endTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return schedule.NewWeeklySchedule(input.WeekNumber, input.StartDate, input.EndDate, slots)
}
