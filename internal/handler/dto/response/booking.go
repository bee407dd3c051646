package response

import (
	"time"

	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
}

type BookedSlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type BookingResponse struct {
	ID                uuid.UUID            `json:"id"`
	Type              string               `json:"type"`
	Status            string               `json:"status"`
	BookingDate       *string              `json:"bookingDate,omitempty"`
	DurationMinutes   int                  `json:"durationMinutes"`
	Price             int                  `json:"price"`
	Message           string               `json:"message"`
	EmailConfirmation bool                 `json:"emailConfirmation"`
	SMSReminder       bool                 `json:"smsReminder"`
	PreferredDate     *string              `json:"preferredDate,omitempty"`
	ExperienceLevel   *string              `json:"experienceLevel,omitempty"`
	NumberOfPlayers   int                  `json:"numberOfPlayers"`
	Customer          CustomerResponse     `json:"customer"`
	Slots             []BookedSlotResponse `json:"slots"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

type DayAvailabilityResponse struct {
	Date           string   `json:"date"`
	AllTimes       []string `json:"allTimes"`
	BookedTimes    []string `json:"bookedTimes"`
	AvailableTimes []string `json:"availableTimes"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	slots := make([]BookedSlotResponse, 0, len(view.Slots))
	for _, slot := range view.Slots {
		slots = append(slots, BookedSlotResponse{
			Date:      slot.Date.Format(dateLayout),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return &BookingResponse{
		ID:                view.ID,
		Type:              view.Type,
		Status:            view.Status,
		BookingDate:       formatDatePtr(view.BookingDate),
		DurationMinutes:   view.DurationMinutes,
		Price:             view.Price,
		Message:           view.Message,
		EmailConfirmation: view.EmailConfirmation,
		SMSReminder:       view.SMSReminder,
		PreferredDate:     formatDatePtr(view.PreferredDate),
		ExperienceLevel:   view.ExperienceLevel,
		NumberOfPlayers:   view.NumberOfPlayers,
		Customer:          CustomerResponse(view.Customer),
		Slots:             slots,
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, view := range views {
		out[i] = FromBookingView(view)
	}
	return out
}

func FromDayAvailabilityView(view *queries.DayAvailabilityView) *DayAvailabilityResponse {
	return &DayAvailabilityResponse{
		Date:           view.Date,
		AllTimes:       view.AllTimes,
		BookedTimes:    view.BookedTimes,
		AvailableTimes: view.AvailableTimes,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}
