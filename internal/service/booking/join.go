package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
	"github.com/google/uuid"
)

// Join adds the rider as a participant of an open shared ride.
//
// The primary row is locked for the whole transaction, so the capacity check,
// the participant and link inserts, the payment and the seat counter update
// commit together or not at all, and concurrent joiners are serialized.
func (s *Service) Join(ctx context.Context, req *models.TripRequest) (*models.BookingResult, error) {
	ctx = wrap.WithAction(ctx, types.ActionJoinSharedRide)

	result, err := s.join(ctx, req)
	switch {
	case err == nil:
		metrics.RecordJoin("joined")
	case errors.Is(err, types.ErrCapacityExceeded):
		metrics.RecordJoin("capacity_exceeded")
	default:
		metrics.RecordJoin("failed")
	}
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	ctx = wrap.WithBookingID(ctx, result.Booking.ID.String())
	metrics.BookingsCreated.WithLabelValues(string(types.KindParticipant)).Inc()
	s.log.Info(ctx, "joined shared ride",
		"primary_booking_id", req.JoinSharedRideID.String(),
		"seats", result.Booking.PassengerCount,
		"distance_km", result.Quote.Distance,
		"distance_source", result.Quote.DistanceSource,
		"amount_due", result.Quote.AmountDue,
		"available_seats", result.Quote.AvailableSeats,
	)
	s.publish(ctx, types.EventSharedRideJoin, result.Booking)

	return result, nil
}

func (s *Service) join(ctx context.Context, req *models.TripRequest) (*models.BookingResult, error) {
	if err := validateTrip(req); err != nil {
		return nil, err
	}

	// resolved before locking: the live provider is a network call
	km, src := s.distance.ForSegment(ctx, req.PickupLocation, req.DropoffLocation, req.SegmentDistance, req.EstimatedDistance)

	var result models.BookingResult
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		primary, err := s.openPrimary(ctx, *req.JoinSharedRideID, s.bookings.GetForUpdate)
		if err != nil {
			return err
		}
		if primary.UserID == req.UserID {
			return types.ErrCannotJoinOwnRide
		}

		vehicle, err := s.vehicles.Get(ctx, primary.VehicleID)
		if err != nil {
			return fmt.Errorf("failed to get vehicle: %w", err)
		}

		occupied, err := s.occupiedSeats(ctx, primary)
		if err != nil {
			return err
		}
		if err := fare.CheckCapacity(vehicle.Capacity, occupied, req.PassengerCount); err != nil {
			return err
		}

		quote, err := fare.QuoteJoin(*vehicle, km, req.PassengerCount)
		if err != nil {
			return err
		}
		quote.DistanceSource = src
		quote.AvailableSeats = vehicle.Capacity - occupied - req.PassengerCount

		b := newBooking(req)
		b.VehicleID = primary.VehicleID
		b.PickupDate = primary.PickupDate
		b.PickupTime = primary.PickupTime
		b.EstimatedDistance = quote.Distance
		b.EstimatedFare = quote.AmountDue
		b.FarePerPerson = quote.FarePerSeat
		b.DiscountApplied = quote.DiscountAmount
		b.IsSharedRide = true
		b.IsPrimaryBooking = false
		b.ParentBookingID = &primary.ID

		participant, err := s.bookings.Create(ctx, b)
		if err != nil {
			return fmt.Errorf("failed to create participant booking: %w", err)
		}

		_, err = s.participants.Create(ctx, &models.SharedRideParticipant{
			ID:                   uuid.New(),
			PrimaryBookingID:     primary.ID,
			ParticipantBookingID: participant.ID,
			PickupLocation:       participant.PickupLocation,
			DropoffLocation:      participant.DropoffLocation,
			FareAmount:           quote.AmountDue,
		})
		if err != nil {
			return fmt.Errorf("failed to link participant: %w", err)
		}

		payment, err := s.payments.Create(ctx, newPayment(participant))
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := s.bookings.SetAvailableSeats(ctx, primary.ID, quote.AvailableSeats); err != nil {
			return fmt.Errorf("failed to update available seats: %w", err)
		}

		result = models.BookingResult{
			Booking: participant,
			Payment: payment,
			Quote:   &quote,
			Message: joinedMessage(&quote),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
