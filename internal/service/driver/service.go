package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
	"github.com/Temutjin2k/cabshare/pkg/trm"
	"github.com/google/uuid"
)

// errFollowsPrimary: participants share the primary's vehicle and move with it.
var errFollowsPrimary = fmt.Errorf("%w: participant bookings follow their shared ride", types.ErrInvalidStatusTransition)

/*
Service provides the driver side of the booking lifecycle:
accepting confirmed bookings and reporting trip progress.
*/
type Service struct {
	repos     repos
	publisher Publisher
	trm       trm.TxManager
	l         logger.Logger
}

type repos struct {
	driver  DriverRepo
	booking BookingRepo
}

// New returns a new instance of the driver service. publisher may be nil.
func New(driverRepo DriverRepo, bookingRepo BookingRepo, publisher Publisher, trm trm.TxManager, l logger.Logger) *Service {
	return &Service{
		repos: repos{
			driver:  driverRepo,
			booking: bookingRepo,
		},
		publisher: publisher,
		trm:       trm,
		l:         l,
	}
}

// Accept assigns the calling driver to a confirmed, unassigned booking.
// Accepting a shared primary assigns its active participants too.
func (s *Service) Accept(ctx context.Context, bookingID uuid.UUID, caller *models.User) (*models.Booking, error) {
	ctx = wrap.WithBookingID(wrap.WithAction(ctx, types.ActionAcceptBooking), bookingID.String())

	driver, err := s.driverOf(ctx, caller)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	var changed []*models.Booking
	err = s.trm.Do(ctx, func(ctx context.Context) error {
		b, err := s.repos.booking.GetForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		switch {
		case b.IsParticipant():
			return errFollowsPrimary
		case b.DriverID != nil:
			return types.ErrAlreadyAccepted
		case b.Status != types.StatusConfirmed:
			return fmt.Errorf("%w: booking is %s", types.ErrInvalidStatusTransition, b.Status)
		}

		ok, err := s.repos.booking.AssignDriver(ctx, b.ID, driver)
		if err != nil {
			return fmt.Errorf("failed to assign driver: %w", err)
		}
		if !ok {
			return types.ErrAlreadyAccepted
		}
		b.AssignDriver(driver)
		b.Status = types.StatusDriverAssigned
		changed = append(changed, b)

		if !b.IsPrimary() {
			return nil
		}

		participants, err := s.activeParticipants(ctx, b.ID)
		if err != nil {
			return err
		}
		for _, p := range participants {
			ok, err := s.repos.booking.AssignDriver(ctx, p.ID, driver)
			if err != nil {
				return fmt.Errorf("failed to assign driver to participant: %w", err)
			}
			if !ok {
				s.l.Warn(ctx, "participant not in an assignable state", "participant_booking_id", p.ID.String(), "status", p.Status)
				continue
			}
			p.AssignDriver(driver)
			p.Status = types.StatusDriverAssigned
			changed = append(changed, p)
		}
		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingStatusChanges.WithLabelValues(string(types.StatusDriverAssigned)).Add(float64(len(changed)))
	s.l.Info(ctx, "booking accepted", "driver_id", driver.ID.String(), "bookings", len(changed))
	s.publish(ctx, types.EventDriverAssigned, changed)

	return changed[0], nil
}

// AdvanceStatus moves a booking assigned to the calling driver one step forward.
// Cancellation is the passenger's operation and is not accepted here.
func (s *Service) AdvanceStatus(ctx context.Context, bookingID uuid.UUID, to types.BookingStatus, caller *models.User) (*models.Booking, error) {
	ctx = wrap.WithBookingID(wrap.WithAction(ctx, types.ActionAdvanceStatus), bookingID.String())

	if to == types.StatusCancelled || !to.Valid() {
		return nil, wrap.Error(ctx, types.NewValidationError("status", "must be a forward booking status"))
	}

	driver, err := s.driverOf(ctx, caller)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	var changed []*models.Booking
	err = s.trm.Do(ctx, func(ctx context.Context) error {
		b, err := s.repos.booking.GetForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if b.IsParticipant() {
			return errFollowsPrimary
		}
		if b.DriverID == nil || *b.DriverID != driver.ID {
			return types.ErrForbidden
		}
		if !types.CanTransition(b.Status, to) {
			return fmt.Errorf("%w: %s to %s", types.ErrInvalidStatusTransition, b.Status, to)
		}

		from := b.Status
		changed = append(changed, b)
		if b.IsPrimary() {
			participants, err := s.activeParticipants(ctx, b.ID)
			if err != nil {
				return err
			}
			for _, p := range participants {
				// participants joined before the driver was assigned move in lockstep
				if p.Status == from {
					changed = append(changed, p)
				}
			}
		}

		ids := make([]uuid.UUID, len(changed))
		for i, c := range changed {
			ids[i] = c.ID
		}
		if err := s.repos.booking.SetStatus(ctx, ids, to); err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}
		for _, c := range changed {
			c.Status = to
		}
		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingStatusChanges.WithLabelValues(string(to)).Add(float64(len(changed)))
	s.l.Info(ctx, "booking status advanced", "status", to, "bookings", len(changed))
	s.publish(ctx, types.EventStatusChanged, changed)

	return changed[0], nil
}

func (s *Service) driverOf(ctx context.Context, caller *models.User) (*models.Driver, error) {
	if caller.IsAnonymous() {
		return nil, types.ErrUnauthorized
	}
	if !caller.HasRole(types.RoleDriver) {
		return nil, types.ErrForbidden
	}

	driver, err := s.repos.driver.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: no driver profile for user", types.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}

func (s *Service) activeParticipants(ctx context.Context, primaryID uuid.UUID) ([]*models.Booking, error) {
	all, err := s.repos.booking.ListParticipants(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	active := make([]*models.Booking, 0, len(all))
	for i := range all {
		if all[i].Status.IsActive() {
			active = append(active, &all[i])
		}
	}
	return active, nil
}

func (s *Service) publish(ctx context.Context, event types.BookingEvent, bookings []*models.Booking) {
	if s.publisher == nil {
		return
	}

	var correlationID string
	if lc, ok := wrap.FromContext(ctx); ok {
		correlationID = lc.RequestID
	}

	for _, b := range bookings {
		if err := s.publisher.PublishBookingEvent(ctx, models.NewBookingEvent(event, b, correlationID)); err != nil {
			s.l.Error(wrap.ErrorCtx(wrap.WithAction(ctx, types.ActionPublishEvent), err), "failed to publish booking event", err,
				"event", event, "event_booking_id", b.ID.String())
		}
	}
}
