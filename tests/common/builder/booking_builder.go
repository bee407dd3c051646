//go:build unit || e2e

package builder

import (
	"time"

	reqdto "fairway-booking/internal/handler/dto/request"
	"fairway-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CustomerID      uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Date            string
	Slots           []string
	Message         string
	NumberOfPlayers int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		CustomerID:      uuid.New(),
		FirstName:       "Jean",
		LastName:        "Dupont",
		Email:           "jean.dupont@example.com",
		Phone:           "+33612345678",
		Date:            "2026-01-05",
		Slots:           []string{"09:00", "09:30"},
		Message:         "First session",
		NumberOfPlayers: 2,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) customerDTO() reqdto.CustomerInfoRequest {
	return reqdto.CustomerInfoRequest{
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Email:     b.Email,
		Phone:     b.Phone,
	}
}

func (b *BookingBuilder) BuildIndoorRequestDTO() reqdto.CreateIndoorBookingRequest {
	return reqdto.CreateIndoorBookingRequest{
		Date:     b.Date,
		Slots:    b.Slots,
		Customer: b.customerDTO(),
		Message:  b.Message,
	}
}

func (b *BookingBuilder) BuildAccompaniedRequestDTO() reqdto.CreateAccompaniedBookingRequest {
	level := "BEGINNER"
	return reqdto.CreateAccompaniedBookingRequest{
		Customer:        b.customerDTO(),
		ExperienceLevel: &level,
		PreferredDate:   &b.Date,
		NumberOfPlayers: b.NumberOfPlayers,
		Message:         b.Message,
	}
}

func (b *BookingBuilder) BuildIndoorViewQuery() *queries.BookingView {
	date, _ := time.Parse("2006-01-02", b.Date)

	slots := make([]queries.BookedSlotView, 0, len(b.Slots))
	for _, s := range b.Slots {
		slots = append(slots, queries.BookedSlotView{
			Date:      date,
			StartTime: s,
			EndTime:   endOfHalfHour(s),
		})
	}

	return &queries.BookingView{
		ID:                uuid.New(),
		Type:              "INDOOR",
		Status:            "PENDING",
		BookingDate:       &date,
		DurationMinutes:   len(b.Slots) * 30,
		Price:             priceFor(len(b.Slots) * 30),
		Message:           b.Message,
		EmailConfirmation: true,
		NumberOfPlayers:   1,
		Customer: queries.CustomerView{
			ID:        b.CustomerID,
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Phone:     b.Phone,
		},
		Slots:     slots,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildAccompaniedViewQuery() *queries.BookingView {
	date, _ := time.Parse("2006-01-02", b.Date)
	level := "BEGINNER"

	return &queries.BookingView{
		ID:                uuid.New(),
		Type:              "ACCOMPANIED",
		Status:            "PENDING",
		Message:           b.Message,
		EmailConfirmation: true,
		PreferredDate:     &date,
		ExperienceLevel:   &level,
		NumberOfPlayers:   b.NumberOfPlayers,
		Customer: queries.CustomerView{
			ID:        b.CustomerID,
			FirstName: b.FirstName,
			LastName:  b.LastName,
			Email:     b.Email,
			Phone:     b.Phone,
		},
		Slots:     []queries.BookedSlotView{},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildAvailabilityViewQuery() *queries.DayAvailabilityView {
	return &queries.DayAvailabilityView{
		Date:           b.Date,
		AllTimes:       []string{"09:00", "09:30", "10:00", "10:30"},
		BookedTimes:    []string{"09:00"},
		AvailableTimes: []string{"09:30", "10:00", "10:30"},
	}
}

func endOfHalfHour(start string) string {
	t, _ := time.Parse("15:04", start)
	return t.Add(30 * time.Minute).Format("15:04")
}

func priceFor(durationMinutes int) int {
	switch durationMinutes {
	case 30:
		return 35
	case 60:
		return 70
	case 90:
		return 100
	case 120:
		return 130
	default:
		return 0
	}
}
