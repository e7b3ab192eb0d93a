package dto

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/validator"
)

const maxLocationLen = 255

// CreateBookingRequest is the trip submission. join_shared_ride_id turns it into a join.
type CreateBookingRequest struct {
	PickupLocation   string `json:"pickup_location"`
	DropoffLocation  string `json:"dropoff_location"`
	PickupDate       string `json:"pickup_date"`
	PickupTime       string `json:"pickup_time"`
	VehicleID        string `json:"vehicle_id"`
	PassengerCount   int    `json:"passenger_count"`
	PassengerName    string `json:"passenger_name"`
	PassengerPhone   string `json:"passenger_phone"`
	SpecialRequests  string `json:"special_requests,omitempty"`
	IsSharedRide     bool   `json:"is_shared_ride,omitempty"`
	JoinSharedRideID string `json:"join_shared_ride_id,omitempty"`
	PaymentMethod    string `json:"payment_method,omitempty"`
	// EstimatedDistance in km; overrides the distance lookup of a new ride.
	EstimatedDistance *float64 `json:"estimated_distance,omitempty"`
	// SegmentDistance in km; overrides the distance lookup of a join.
	SegmentDistance *float64 `json:"segment_distance,omitempty"`
}

func (r *CreateBookingRequest) Validate(v *validator.Validator) {
	checkLocations(v, r.PickupLocation, r.DropoffLocation)
	checkDistances(v, r.EstimatedDistance, r.SegmentDistance)

	v.Check(r.PassengerCount >= 1, "passenger_count", "must be at least 1")
	v.Check(strings.TrimSpace(r.PassengerName) != "", "passenger_name", "must be provided")
	v.Check(len(r.PassengerName) <= 100, "passenger_name", "must not be more than 100 characters long")
	v.Check(validator.Matches(strings.TrimSpace(r.PassengerPhone), validator.PhoneRX), "passenger_phone", "must be a valid mobile number")
	v.Check(len(r.SpecialRequests) <= 500, "special_requests", "must not be more than 500 characters long")

	if r.PaymentMethod != "" {
		v.Check(validator.PermittedValue(types.PaymentMethod(r.PaymentMethod), types.PaymentCash, types.PaymentUPI, types.PaymentCard),
			"payment_method", "must be one of cash, upi or card")
	}

	if r.JoinSharedRideID != "" {
		checkUUID(v, r.JoinSharedRideID, "join_shared_ride_id")
		return
	}

	// only a new ride picks its own vehicle and schedule
	v.Check(r.VehicleID != "", "vehicle_id", "must be provided")
	if r.VehicleID != "" {
		checkUUID(v, r.VehicleID, "vehicle_id")
	}
	v.Check(validator.IsDate(r.PickupDate), "pickup_date", "must be a date in YYYY-MM-DD format")
	v.Check(validator.Matches(r.PickupTime, validator.ClockRX), "pickup_time", "must be a time in HH:MM format")
}

// ToModel must be called after Validate succeeded.
func (r *CreateBookingRequest) ToModel(userID uuid.UUID) *models.TripRequest {
	req := &models.TripRequest{
		UserID:            userID,
		PickupLocation:    strings.TrimSpace(r.PickupLocation),
		DropoffLocation:   strings.TrimSpace(r.DropoffLocation),
		PickupDate:        r.PickupDate,
		PickupTime:        r.PickupTime,
		VehicleID:         parseOrNil(r.VehicleID),
		PassengerCount:    r.PassengerCount,
		PassengerName:     strings.TrimSpace(r.PassengerName),
		PassengerPhone:    strings.TrimSpace(r.PassengerPhone),
		SpecialRequests:   strings.TrimSpace(r.SpecialRequests),
		IsSharedRide:      r.IsSharedRide,
		JoinSharedRideID:  parseOptional(r.JoinSharedRideID),
		PaymentMethod:     types.PaymentMethod(r.PaymentMethod),
		EstimatedDistance: r.EstimatedDistance,
		SegmentDistance:   r.SegmentDistance,
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = types.PaymentCash
	}
	return req
}

// QuoteRequest previews a fare without booking.
type QuoteRequest struct {
	PickupLocation    string   `json:"pickup_location"`
	DropoffLocation   string   `json:"dropoff_location"`
	VehicleID         string   `json:"vehicle_id,omitempty"`
	PassengerCount    int      `json:"passenger_count"`
	IsSharedRide      bool     `json:"is_shared_ride,omitempty"`
	JoinSharedRideID  string   `json:"join_shared_ride_id,omitempty"`
	EstimatedDistance *float64 `json:"estimated_distance,omitempty"`
	SegmentDistance   *float64 `json:"segment_distance,omitempty"`
}

func (r *QuoteRequest) Validate(v *validator.Validator) {
	checkLocations(v, r.PickupLocation, r.DropoffLocation)
	checkDistances(v, r.EstimatedDistance, r.SegmentDistance)
	v.Check(r.PassengerCount >= 1, "passenger_count", "must be at least 1")

	if r.JoinSharedRideID != "" {
		checkUUID(v, r.JoinSharedRideID, "join_shared_ride_id")
		return
	}
	v.Check(r.VehicleID != "", "vehicle_id", "must be provided")
	if r.VehicleID != "" {
		checkUUID(v, r.VehicleID, "vehicle_id")
	}
}

func (r *QuoteRequest) ToModel(userID uuid.UUID) *models.TripRequest {
	return &models.TripRequest{
		UserID:            userID,
		PickupLocation:    strings.TrimSpace(r.PickupLocation),
		DropoffLocation:   strings.TrimSpace(r.DropoffLocation),
		VehicleID:         parseOrNil(r.VehicleID),
		PassengerCount:    r.PassengerCount,
		IsSharedRide:      r.IsSharedRide,
		JoinSharedRideID:  parseOptional(r.JoinSharedRideID),
		EstimatedDistance: r.EstimatedDistance,
		SegmentDistance:   r.SegmentDistance,
	}
}

// BookingResponse is the body of a successful create or join.
type BookingResponse struct {
	Booking  *models.Booking   `json:"booking"`
	Payment  *models.Payment   `json:"payment"`
	Fare     *models.FareQuote `json:"fare,omitempty"`
	Message  string            `json:"message"`
	IsShared bool              `json:"is_shared"`
}

func NewBookingResponse(res *models.BookingResult) BookingResponse {
	return BookingResponse{
		Booking:  res.Booking,
		Payment:  res.Payment,
		Fare:     res.Quote,
		Message:  res.Message,
		IsShared: res.Booking.IsSharedRide,
	}
}

func checkLocations(v *validator.Validator, pickup, dropoff string) {
	v.Check(strings.TrimSpace(pickup) != "", "pickup_location", "must be provided")
	v.Check(len(pickup) <= maxLocationLen, "pickup_location", "must not be more than 255 characters long")
	v.Check(strings.TrimSpace(dropoff) != "", "dropoff_location", "must be provided")
	v.Check(len(dropoff) <= maxLocationLen, "dropoff_location", "must not be more than 255 characters long")
}

func checkDistances(v *validator.Validator, estimated, segment *float64) {
	if estimated != nil {
		v.Check(*estimated > 0, "estimated_distance", "must be greater than zero")
	}
	if segment != nil {
		v.Check(*segment > 0, "segment_distance", "must be greater than zero")
	}
}

func checkUUID(v *validator.Validator, value, field string) {
	_, err := uuid.Parse(value)
	v.Check(err == nil, field, "must be a valid UUID")
}

func parseOrNil(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseOptional(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
