package models

import (
	"time"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// Booking is one passenger party's trip record.
//
// Shape invariants:
//   - standalone:  IsSharedRide=false, ParentBookingID=nil
//   - primary:     IsSharedRide=true, IsPrimaryBooking=true, ParentBookingID=nil, owns AvailableSeats
//   - participant: IsSharedRide=true, IsPrimaryBooking=false, ParentBookingID=primary id
type Booking struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`

	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupDate      string `json:"pickup_date"` // YYYY-MM-DD
	PickupTime      string `json:"pickup_time"` // HH:MM

	PassengerName   string `json:"passenger_name"`
	PassengerPhone  string `json:"passenger_phone"`
	PassengerCount  int    `json:"passenger_count"`
	SpecialRequests string `json:"special_requests,omitempty"`

	EstimatedDistance float64 `json:"estimated_distance"`
	EstimatedFare     float64 `json:"estimated_fare"`
	FarePerPerson     float64 `json:"fare_per_person"`
	DiscountApplied   float64 `json:"discount_applied"`

	IsSharedRide      bool       `json:"is_shared_ride"`
	IsPrimaryBooking  bool       `json:"is_primary_booking"`
	ParentBookingID   *uuid.UUID `json:"parent_booking_id,omitempty"`
	AvailableSeats    int        `json:"available_seats"`
	RouteSegmentStart string     `json:"route_segment_start"`
	RouteSegmentEnd   string     `json:"route_segment_end"`

	Status        types.BookingStatus `json:"status"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`

	DriverID      *uuid.UUID `json:"driver_id,omitempty"`
	DriverName    string     `json:"driver_name,omitempty"`
	DriverPhone   string     `json:"driver_phone,omitempty"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) Kind() types.BookingKind {
	switch {
	case !b.IsSharedRide:
		return types.KindStandalone
	case b.ParentBookingID != nil:
		return types.KindParticipant
	default:
		return types.KindPrimary
	}
}

func (b *Booking) IsPrimary() bool {
	return b.Kind() == types.KindPrimary
}

func (b *Booking) IsParticipant() bool {
	return b.Kind() == types.KindParticipant
}

// AssignDriver copies the driver's contact fields onto the booking.
func (b *Booking) AssignDriver(d *Driver) {
	id := d.ID
	b.DriverID = &id
	b.DriverName = d.Name
	b.DriverPhone = d.Phone
	b.VehicleNumber = d.VehicleNumber
}

// SharedRideParticipant links a participant booking to its primary.
// Rows are immutable and are removed only together with the participant booking.
type SharedRideParticipant struct {
	ID                   uuid.UUID `json:"id"`
	PrimaryBookingID     uuid.UUID `json:"primary_booking_id"`
	ParticipantBookingID uuid.UUID `json:"participant_booking_id"`
	PickupLocation       string    `json:"pickup_location"`
	DropoffLocation      string    `json:"dropoff_location"`
	FareAmount           float64   `json:"fare_amount"`
	CreatedAt            time.Time `json:"created_at"`
}
