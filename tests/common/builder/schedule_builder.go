//go:build unit || e2e

package builder

import (
	"time"

	domschedule "fairway-booking/internal/domain/schedule"
	reqdto "fairway-booking/internal/handler/dto/request"
	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleBuilder struct {
	WeekNumber int
	StartDate  string
	EndDate    string
	Slots      []reqdto.ScheduleSlotRequest
}

func NewScheduleBuilder() *ScheduleBuilder {
	monday := 1
	friday := 5
	return &ScheduleBuilder{
		WeekNumber: 1,
		StartDate:  "2026-01-05",
		EndDate:    "2026-01-11",
		Slots: []reqdto.ScheduleSlotRequest{
			{DayOfWeek: &monday, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: &friday, StartTime: "14:00", EndTime: "18:00"},
		},
	}
}

func (b *ScheduleBuilder) With(mutate func(*ScheduleBuilder)) *ScheduleBuilder {
	mutate(b)
	return b
}

func (b *ScheduleBuilder) BuildUpsertRequestDTO() reqdto.UpsertScheduleRequest {
	return reqdto.UpsertScheduleRequest{
		WeekNumber: b.WeekNumber,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TimeSlots:  b.Slots,
	}
}

func (b *ScheduleBuilder) BuildDomain() (*domschedule.WeeklySchedule, error) {
	startDate, err := time.Parse("2006-01-02", b.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse("2006-01-02", b.EndDate)
	if err != nil {
		return nil, err
	}

	slots := make([]domschedule.ScheduleSlot, 0, len(b.Slots))
	for _, s := range b.Slots {
		startTime, err := domschedule.ParseClockTime(s.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := domschedule.ParseClockTime(s.EndTime)
		if err != nil {
			return nil, err
		}
		slot, err := domschedule.NewScheduleSlot(*s.DayOfWeek, startTime, endTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return domschedule.NewWeeklySchedule(b.WeekNumber, startDate, endDate, slots)
}

func (b *ScheduleBuilder) BuildViewQuery() *queries.ScheduleView {
	slots := make([]queries.ScheduleSlotView, 0, len(b.Slots))
	for _, s := range b.Slots {
		slots = append(slots, queries.ScheduleSlotView{
			ID:        uuid.New(),
			DayOfWeek: *s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return &queries.ScheduleView{
		{
			WeekNumber: 1,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
			TimeSlots:  slots,
		},
		{
			WeekNumber: 2,
			TimeSlots:  []queries.ScheduleSlotView{},
		},
	}
}
