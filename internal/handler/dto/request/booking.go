package request

import (
	"strings"
	"time"

	"fairway-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CustomerInfoRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

type CreateIndoorBookingRequest struct {
	Date              string              `json:"date" binding:"required"`
	Slots             []string            `json:"slots" binding:"required,min=1"`
	Customer          CustomerInfoRequest `json:"customer" binding:"required"`
	Message           string              `json:"message"`
	EmailConfirmation *bool               `json:"emailConfirmation"`
	SMSReminder       *bool               `json:"smsReminder"`
}

func (r CreateIndoorBookingRequest) ToInput(userID *uuid.UUID) (commands.IndoorBookingInput, error) {
	var zero commands.IndoorBookingInput

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return zero, err
	}

	// Email confirmations default on, SMS reminders default off.
	emailConfirmation := true
	if r.EmailConfirmation != nil {
		emailConfirmation = *r.EmailConfirmation
	}
	smsReminder := false
	if r.SMSReminder != nil {
		smsReminder = *r.SMSReminder
	}

	return commands.IndoorBookingInput{
		Date:              date,
		SelectedTimes:     r.Slots,
		Customer:          r.Customer.toInput(),
		Message:           strings.TrimSpace(r.Message),
		EmailConfirmation: emailConfirmation,
		SMSReminder:       smsReminder,
		UserID:            userID,
	}, nil
}

type CreateAccompaniedBookingRequest struct {
	Customer        CustomerInfoRequest `json:"customer" binding:"required"`
	ExperienceLevel *string             `json:"experienceLevel"`
	PreferredDate   *string             `json:"preferredDate"`
	NumberOfPlayers int                 `json:"numberOfPlayers" binding:"required,min=1"`
	Message         string              `json:"message"`
}

func (r CreateAccompaniedBookingRequest) ToInput(userID *uuid.UUID) (commands.AccompaniedBookingInput, error) {
	var zero commands.AccompaniedBookingInput

	var preferredDate *time.Time
	if r.PreferredDate != nil && *r.PreferredDate != "" {
		parsed, err := time.Parse(dateLayout, *r.PreferredDate)
		if err != nil {
			return zero, err
		}
		preferredDate = &parsed
	}

	return commands.AccompaniedBookingInput{
		Customer:        r.Customer.toInput(),
		ExperienceLevel: r.ExperienceLevel,
		PreferredDate:   preferredDate,
		NumberOfPlayers: r.NumberOfPlayers,
		Message:         strings.TrimSpace(r.Message),
		UserID:          userID,
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateBookingRequest struct {
	Message           *string `json:"message"`
	EmailConfirmation *bool   `json:"emailConfirmation"`
	SMSReminder       *bool   `json:"smsReminder"`
	ExperienceLevel   *string `json:"experienceLevel"`
	NumberOfPlayers   *int    `json:"numberOfPlayers"`
	PreferredDate     *string `json:"preferredDate"`
}

func (r UpdateBookingRequest) ToPatch() (commands.BookingPatch, error) {
	var zero commands.BookingPatch

	var preferredDate *time.Time
	if r.PreferredDate != nil {
		parsed, err := time.Parse(dateLayout, *r.PreferredDate)
		if err != nil {
			return zero, err
		}
		preferredDate = &parsed
	}

	return commands.BookingPatch{
		Message:           r.Message,
		EmailConfirmation: r.EmailConfirmation,
		SMSReminder:       r.SMSReminder,
		ExperienceLevel:   r.ExperienceLevel,
		NumberOfPlayers:   r.NumberOfPlayers,
		PreferredDate:     preferredDate,
	}, nil
}

func (r CustomerInfoRequest) toInput() commands.CustomerInput {
	return commands.CustomerInput{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
	}
}
