package request

import (
	"time"

	"fairway-booking/internal/usecase/commands"
)

type ScheduleSlotRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type UpsertScheduleRequest struct {
	WeekNumber int                   `json:"weekNumber" binding:"required,min=1,max=2"`
	StartDate  string                `json:"startDate" binding:"required"`
	EndDate    string                `json:"endDate" binding:"required"`
	TimeSlots  []ScheduleSlotRequest `json:"timeSlots" binding:"required,dive"`
}

const dateLayout = "2006-01-02"

func (r UpsertScheduleRequest) ToInput() (commands.WeekScheduleInput, error) {
	var zero commands.WeekScheduleInput

	startDate, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return zero, err
	}
	endDate, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return zero, err
	}

	slots := make([]commands.ScheduleSlotInput, 0, len(r.TimeSlots))
	for _, slot := range r.TimeSlots {
		slots = append(slots, commands.ScheduleSlotInput{
			DayOfWeek: *slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return commands.WeekScheduleInput{
		WeekNumber: r.WeekNumber,
		StartDate:  startDate,
		EndDate:    endDate,
		Slots:      slots,
	}, nil
}
