package models

import (
	"time"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// BookingEvent is published after a ledger change commits.
type BookingEvent struct {
	EventType        types.BookingEvent  `json:"event_type"`
	BookingID        uuid.UUID           `json:"booking_id"`
	PrimaryBookingID *uuid.UUID          `json:"primary_booking_id,omitempty"`
	UserID           uuid.UUID           `json:"user_id"`
	DriverID         *uuid.UUID          `json:"driver_id,omitempty"`
	Kind             types.BookingKind   `json:"kind"`
	Status           types.BookingStatus `json:"status"`
	Seats            int                 `json:"seats"`
	AvailableSeats   int                 `json:"available_seats"`
	Fare             float64             `json:"fare"`
	CorrelationID    string              `json:"correlation_id,omitempty"`
	Timestamp        time.Time           `json:"timestamp"`
}

// NewBookingEvent fills the event from b.
func NewBookingEvent(eventType types.BookingEvent, b *Booking, correlationID string) BookingEvent {
	return BookingEvent{
		EventType:        eventType,
		BookingID:        b.ID,
		PrimaryBookingID: b.ParentBookingID,
		UserID:           b.UserID,
		DriverID:         b.DriverID,
		Kind:             b.Kind(),
		Status:           b.Status,
		Seats:            b.PassengerCount,
		AvailableSeats:   b.AvailableSeats,
		Fare:             b.EstimatedFare,
		CorrelationID:    correlationID,
		Timestamp:        time.Now().UTC(),
	}
}
