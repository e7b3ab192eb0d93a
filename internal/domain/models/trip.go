package models

import (
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// TripRequest is a rider's booking submission. With JoinSharedRideID set it joins
// that shared ride, otherwise it creates a new standalone or primary booking.
type TripRequest struct {
	UserID uuid.UUID

	PickupLocation  string
	DropoffLocation string
	PickupDate      string
	PickupTime      string
	VehicleID       uuid.UUID

	PassengerCount  int
	PassengerName   string
	PassengerPhone  string
	SpecialRequests string

	IsSharedRide     bool
	JoinSharedRideID *uuid.UUID
	PaymentMethod    types.PaymentMethod

	// EstimatedDistance is the caller's measured distance. It overrides every
	// other source for a new ride and is the joiner's own estimate on a join.
	EstimatedDistance *float64
	// SegmentDistance overrides every other source on a join.
	SegmentDistance *float64
}

func (r *TripRequest) IsJoin() bool {
	return r.JoinSharedRideID != nil
}

// MatchQuery describes the trip a rider wants to share.
type MatchQuery struct {
	Pickup  string
	Dropoff string
	Date    string
	Seats   int
	// ExcludeUserID drops the rider's own rides from the candidates.
	ExcludeUserID uuid.UUID
}

// Match is a ranked candidate shared ride.
type Match struct {
	Booking           Booking         `json:"booking"`
	Score             int             `json:"score"`
	MatchType         types.MatchType `json:"match_type"`
	IntermediatePoint string          `json:"intermediate_point,omitempty"`
}

// FareQuote is the fare breakdown for one party. Amounts keep full precision.
type FareQuote struct {
	Shared         bool                 `json:"shared"`
	Seats          int                  `json:"seats"`
	Distance       float64              `json:"distance_km"`
	DistanceSource types.DistanceSource `json:"distance_source"`
	PricePerKm     float64              `json:"price_per_km"`
	BaseFare       float64              `json:"base_fare"`
	DiscountAmount float64              `json:"discount_amount"`
	// DiscountedTotal is the discounted full-vehicle fare of a new shared ride,
	// or the discounted segment fare of a join.
	DiscountedTotal float64 `json:"discounted_total"`
	FarePerSeat     float64 `json:"fare_per_seat"`
	AmountDue       float64 `json:"amount_due"`
	// AvailableSeats is the primary's free capacity after this party boards.
	AvailableSeats int `json:"available_seats"`
}

// BookingResult is returned after a booking or join commits.
type BookingResult struct {
	Booking *Booking   `json:"booking"`
	Payment *Payment   `json:"payment"`
	Quote   *FareQuote `json:"-"`
	Message string     `json:"message"`
}

// BookingDetails is a booking with its shared-ride relatives.
type BookingDetails struct {
	Booking      *Booking                `json:"booking"`
	Payment      *Payment                `json:"payment,omitempty"`
	Participants []SharedRideParticipant `json:"participants,omitempty"`
}
