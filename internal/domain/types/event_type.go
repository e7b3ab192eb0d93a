package types

type BookingEvent string

func (s BookingEvent) String() string {
	return string(s)
}

const (
	EventBookingCreated  BookingEvent = "BOOKING_CREATED"
	EventSharedRideJoin  BookingEvent = "SHARED_RIDE_JOINED"
	EventDriverAssigned  BookingEvent = "DRIVER_ASSIGNED"
	EventStatusChanged   BookingEvent = "STATUS_CHANGED"
	EventBookingCanceled BookingEvent = "BOOKING_CANCELLED"
)
