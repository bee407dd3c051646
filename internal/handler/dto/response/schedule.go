package response

import (
	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type ScheduleWeekResponse struct {
	WeekNumber int                    `json:"weekNumber"`
	StartDate  string                 `json:"startDate"`
	EndDate    string                 `json:"endDate"`
	TimeSlots  []ScheduleSlotResponse `json:"timeSlots"`
}

// ScheduleResponse is the two week entries, ordered by week number.
type ScheduleResponse []ScheduleWeekResponse

type UpsertScheduleResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromScheduleView(view *queries.ScheduleView) ScheduleResponse {
	weeks := make(ScheduleResponse, 0, len(*view))
	for _, week := range *view {
		weeks = append(weeks, fromScheduleWeekView(week))
	}
	return weeks
}

func fromScheduleWeekView(week queries.ScheduleWeekView) ScheduleWeekResponse {
	slots := make([]ScheduleSlotResponse, 0, len(week.TimeSlots))
	for _, slot := range week.TimeSlots {
		slots = append(slots, ScheduleSlotResponse(slot))
	}
	return ScheduleWeekResponse{
		WeekNumber: week.WeekNumber,
		StartDate:  week.StartDate,
		EndDate:    week.EndDate,
		TimeSlots:  slots,
	}
}
