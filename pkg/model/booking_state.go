package model

// BookingState selects which bookings a listing returns.
type BookingState int

const (
	StateAll BookingState = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var bookingStateNames = map[BookingState]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

func (s BookingState) String() string {
	if name, ok := bookingStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseBookingState maps a query token to a state. An empty token means ALL.
func ParseBookingState(token string) (BookingState, bool) {
	if token == "" {
		return StateAll, true
	}
	for state, name := range bookingStateNames {
		if name == token {
			return state, true
		}
	}
	return 0, false
}
