package booking

import (
	"errors"

	"fairway-booking/internal/domain/schedule"
)

var (
	ErrEmptySelection  = errors.New("selection must contain at least one slot")
	ErrSlotUnavailable = errors.New("selected slot is not available")
)

// Bookable filters the resolver's candidates against the start times already
// booked on the same date. Order of the candidates is preserved.
func Bookable(candidates []schedule.ClockTime, booked []schedule.ClockTime) []schedule.ClockTime {
	taken := make(map[int]bool, len(booked))
	for _, t := range booked {
		taken[t.Minutes()] = true
	}

	free := make([]schedule.ClockTime, 0, len(candidates))
	for _, t := range candidates {
		if !taken[t.Minutes()] {
			free = append(free, t)
		}
	}
	return free
}

// Selection is a validated, priced set of half-hour start times chosen by a
// customer. Slots need not be contiguous; price depends only on the count.
type Selection struct {
	Times           []schedule.ClockTime
	DurationMinutes int
	Price           int
}

// NewSelection validates the chosen start times against the bookable set and
// computes duration and price. An empty selection and a selection containing
// any unavailable slot are both rejected.
func NewSelection(selected []schedule.ClockTime, bookable []schedule.ClockTime) (Selection, error) {
	if len(selected) == 0 {
		return Selection{}, ErrEmptySelection
	}

	free := make(map[int]bool, len(bookable))
	for _, t := range bookable {
		free[t.Minutes()] = true
	}
	for _, t := range selected {
		if !free[t.Minutes()] {
			return Selection{}, ErrSlotUnavailable
		}
	}

	duration := len(selected) * schedule.SlotDurationMinutes
	price, err := PriceForDuration(duration)
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Times:           selected,
		DurationMinutes: duration,
		Price:           price,
	}, nil
}
