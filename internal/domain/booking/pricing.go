package booking

import "errors"

var ErrUnpricedDuration = errors.New("no price defined for duration")

// Session prices in euros by total duration in minutes. The table is a step
// function, not a linear rate: longer sessions are discounted.
var priceTable = map[int]int{
	30:  35,
	60:  70,
	90:  100,
	120: 130,
}

// PriceForDuration looks up the session price for a total duration. Durations
// outside the table are rejected rather than priced at zero, which also caps
// a single booking at four half-hour slots.
func PriceForDuration(durationMinutes int) (int, error) {
	price, ok := priceTable[durationMinutes]
	if !ok {
		return 0, ErrUnpricedDuration
	}
	return price, nil
}
