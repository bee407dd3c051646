package booking

// Type distinguishes simulator bookings bound to concrete time slots from
// accompanied sessions that only carry customer preferences.
type Type string

const (
	TypeIndoor      Type = "INDOOR"
	TypeAccompanied Type = "ACCOMPANIED"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeIndoor, TypeAccompanied:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a booking of the given type may move from
// one status to another. COMPLETED is reachable only for accompanied
// bookings; cancelled and completed bookings are terminal.
func CanTransition(bookingType Type, from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		if to == StatusCancelled {
			return true
		}
		return to == StatusCompleted && bookingType == TypeAccompanied
	default:
		return false
	}
}
