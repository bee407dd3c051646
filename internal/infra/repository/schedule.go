package repository

import (
	"context"
	"time"

	"fairway-booking/internal/domain/schedule"
	"fairway-booking/internal/infra"
	"fairway-booking/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(dbtx db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx}
}

// Upsert replaces the weekly template keyed by week number: the schedule row
// is upserted and its slot rows are rewritten wholesale in the caller's
// transaction.
func (r *ScheduleRepository) Upsert(ctx context.Context, tx db.DBTX, sched *schedule.WeeklySchedule) (uuid.UUID, error) {
	query, args, err := psql.Insert("weekly_schedules").
		Columns("id", "week_number", "start_date", "end_date").
		Values(sched.ID(), sched.WeekNumber(), sched.StartDate(), sched.EndDate()).
		Suffix("ON CONFLICT (week_number) DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, updated_at = now()").
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build schedule upsert", err, infra.KindDBFailure)
	}

	var scheduleID uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&scheduleID); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert weekly schedule", err)
	}

	deleteQuery, deleteArgs, err := psql.Delete("schedule_slots").
		Where("schedule_id = ?", scheduleID).
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build slot delete", err, infra.KindDBFailure)
	}
	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to clear schedule slots", err)
	}

	for i, slot := range sched.Slots() {
		insertQuery, insertArgs, err := psql.Insert("schedule_slots").
			Columns("id", "schedule_id", "day_of_week", "start_time", "end_time", "position").
			Values(slot.ID(), scheduleID, int(slot.DayOfWeek()), slot.StartTime().String(), slot.EndTime().String(), i).
			ToSql()
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to build slot insert", err, infra.KindDBFailure)
		}
		if _, err := tx.Exec(ctx, insertQuery, insertArgs...); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert schedule slot", err)
		}
	}

	return scheduleID, nil
}

// FindAll returns every weekly template with its slots in template order.
func (r *ScheduleRepository) FindAll(ctx context.Context) ([]*schedule.WeeklySchedule, error) {
	query, args, err := psql.Select("id", "week_number", "start_date", "end_date").
		From("weekly_schedules").
		OrderBy("week_number ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build schedule select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query weekly schedules", err)
	}
	defer rows.Close()

	type scheduleRow struct {
		id         uuid.UUID
		weekNumber int
		startDate  time.Time
		endDate    time.Time
	}

	var headers []scheduleRow
	for rows.Next() {
		var row scheduleRow
		if err := rows.Scan(&row.id, &row.weekNumber, &row.startDate, &row.endDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekly schedule", err)
		}
		headers = append(headers, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read weekly schedules", err)
	}

	schedules := make([]*schedule.WeeklySchedule, 0, len(headers))
	for _, header := range headers {
		slots, err := r.findSlots(ctx, header.id)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule.ReconstructWeeklySchedule(
			header.id, header.weekNumber, header.startDate, header.endDate, slots,
		))
	}

	return schedules, nil
}

func (r *ScheduleRepository) findSlots(ctx context.Context, scheduleID uuid.UUID) ([]schedule.ScheduleSlot, error) {
	query, args, err := psql.Select("id", "day_of_week", "start_time", "end_time").
		From("schedule_slots").
		Where("schedule_id = ?", scheduleID).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot select", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query schedule slots", err)
	}
	defer rows.Close()

	var slots []schedule.ScheduleSlot
	for rows.Next() {
		var (
			id        uuid.UUID
			dayOfWeek int
			startRaw  string
			endRaw    string
		)
		if err := rows.Scan(&id, &dayOfWeek, &startRaw, &endRaw); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule slot", err)
		}

		startTime, err := schedule.ParseClockTime(startRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored start time is malformed", err)
		}
		endTime, err := schedule.ParseClockTime(endRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored end time is malformed", err)
		}

		slots = append(slots, schedule.ReconstructScheduleSlot(id, time.Weekday(dayOfWeek), startTime, endTime))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule slots", err)
	}

	return slots, nil
}
