package booking

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
	"github.com/google/uuid"
)

// Cancel cancels a booking on behalf of its owner or an admin.
//
// Cancelling a primary cancels its active participants and closes the ride to
// new joiners. Cancelling a participant gives its seats back to the primary.
// Pending payments of every cancelled booking are cancelled with it.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, caller *models.User) (*models.Booking, error) {
	ctx = wrap.WithBookingID(wrap.WithAction(ctx, types.ActionCancelBooking), id.String())

	var cancelled []*models.Booking
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		b, err := s.bookings.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		// lock order is always primary first
		var primary *models.Booking
		switch {
		case b.IsPrimary():
			if primary, err = s.bookings.GetForUpdate(ctx, b.ID); err != nil {
				return fmt.Errorf("failed to lock booking: %w", err)
			}
			b = primary
		case b.IsParticipant():
			if primary, err = s.bookings.GetForUpdate(ctx, *b.ParentBookingID); err != nil {
				return fmt.Errorf("failed to lock shared ride: %w", err)
			}
			if b, err = s.bookings.Get(ctx, id); err != nil {
				return fmt.Errorf("failed to get booking: %w", err)
			}
		default:
			if b, err = s.bookings.GetForUpdate(ctx, id); err != nil {
				return fmt.Errorf("failed to lock booking: %w", err)
			}
		}

		if caller.IsAnonymous() {
			return types.ErrUnauthorized
		}
		if b.UserID != caller.ID && !caller.HasRole(types.RoleAdmin) {
			return types.ErrForbidden
		}
		if !types.CanTransition(b.Status, types.StatusCancelled) {
			return fmt.Errorf("%w: booking is %s", types.ErrInvalidStatusTransition, b.Status)
		}

		switch {
		case b.IsPrimary():
			cancelled, err = s.cancelPrimary(ctx, b)
		case b.IsParticipant():
			cancelled, err = s.cancelParticipant(ctx, primary, b)
		default:
			cancelled, err = s.cancelBookings(ctx, b)
		}
		return err
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingStatusChanges.WithLabelValues(string(types.StatusCancelled)).Add(float64(len(cancelled)))
	s.log.Info(ctx, "booking cancelled", "cancelled_bookings", len(cancelled))
	for _, c := range cancelled {
		s.publish(ctx, types.EventBookingCanceled, c)
	}

	return cancelled[0], nil
}

func (s *Service) cancelPrimary(ctx context.Context, primary *models.Booking) ([]*models.Booking, error) {
	participants, err := s.bookings.ListParticipants(ctx, primary.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	targets := []*models.Booking{primary}
	for i := range participants {
		if participants[i].Status.IsActive() {
			targets = append(targets, &participants[i])
		}
	}

	if err := s.bookings.SetAvailableSeats(ctx, primary.ID, 0); err != nil {
		return nil, fmt.Errorf("failed to close shared ride: %w", err)
	}
	primary.AvailableSeats = 0

	return s.cancelBookings(ctx, targets...)
}

func (s *Service) cancelParticipant(ctx context.Context, primary, participant *models.Booking) ([]*models.Booking, error) {
	cancelled, err := s.cancelBookings(ctx, participant)
	if err != nil {
		return nil, err
	}

	// seats of a closed ride stay closed
	if primary.Status != types.StatusConfirmed {
		return cancelled, nil
	}

	vehicle, err := s.vehicles.Get(ctx, primary.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	participants, err := s.bookings.ListParticipants(ctx, primary.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	available := max(vehicle.Capacity-occupancy(primary, participants, participant.ID), 0)
	if err := s.bookings.SetAvailableSeats(ctx, primary.ID, available); err != nil {
		return nil, fmt.Errorf("failed to release seats: %w", err)
	}

	return cancelled, nil
}

func (s *Service) cancelBookings(ctx context.Context, targets ...*models.Booking) ([]*models.Booking, error) {
	ids := make([]uuid.UUID, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}

	if err := s.bookings.SetStatus(ctx, ids, types.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel bookings: %w", err)
	}
	if err := s.payments.CancelPending(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to cancel payments: %w", err)
	}

	for _, t := range targets {
		t.Status = types.StatusCancelled
	}
	return targets, nil
}
