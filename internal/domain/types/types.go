package types

type ServiceMode string

// Booking Service - passenger surface: fare quotes, shared ride matching, bookings and joins
// Driver Service - driver surface: accepting bookings and reporting trip progress
const (
	BookingService ServiceMode = "booking-service"
	DriverService  ServiceMode = "driver-service"
)

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RolePassenger UserRole = "passenger"
	RoleDriver    UserRole = "driver"
	RoleAdmin     UserRole = "admin"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// BookingKind is the sharing shape of a booking.
type BookingKind string

const (
	KindStandalone  BookingKind = "standalone"
	KindPrimary     BookingKind = "primary"
	KindParticipant BookingKind = "participant"
)
