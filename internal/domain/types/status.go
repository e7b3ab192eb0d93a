package types

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

func (s BookingStatus) String() string {
	return string(s)
}

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusDriverAssigned BookingStatus = "driver_assigned"
	StatusOnTheWay       BookingStatus = "on_the_way"
	StatusPickedUp       BookingStatus = "picked_up"
	StatusInTransit      BookingStatus = "in_transit"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
)

// forward lists the single next state of each non-terminal status.
var forward = map[BookingStatus]BookingStatus{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusDriverAssigned,
	StatusDriverAssigned: StatusOnTheWay,
	StatusOnTheWay:       StatusPickedUp,
	StatusPickedUp:       StatusInTransit,
	StatusInTransit:      StatusCompleted,
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	_, ok := forward[s]
	return ok || s.IsTerminal()
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether s still holds seats in a vehicle.
func (s BookingStatus) IsActive() bool {
	return s.Valid() && !s.IsTerminal()
}

// Next returns the forward successor of s.
func (s BookingStatus) Next() (BookingStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// CanTransition: forward progression is linear; cancelled is reachable from every
// non-terminal state; terminal states never change.
func CanTransition(from, to BookingStatus) bool {
	if from.IsTerminal() || !from.Valid() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	next, ok := forward[from]
	return ok && next == to
}

// ActiveStatuses lists statuses that occupy seats.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending, StatusConfirmed, StatusDriverAssigned,
		StatusOnTheWay, StatusPickedUp, StatusInTransit,
	}
}
