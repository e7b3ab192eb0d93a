package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
	"github.com/Temutjin2k/cabshare/pkg/trm"
	"github.com/google/uuid"
)

// Service owns the booking ledger: primaries, participants, their seat
// counters and payments due.
type Service struct {
	bookings     BookingRepo
	participants ParticipantRepo
	vehicles     VehicleRepo
	payments     PaymentRepo
	drivers      DriverRepo

	distance DistanceResolver
	matcher  Matcher
	events   EventPublisher
	trm      trm.TxManager
	log      logger.Logger
}

// NewService builds the service. events may be nil.
func NewService(repos Repositories, distance DistanceResolver, matcher Matcher, events EventPublisher, trm trm.TxManager, log logger.Logger) *Service {
	return &Service{
		bookings:     repos.Bookings,
		participants: repos.Participants,
		vehicles:     repos.Vehicles,
		payments:     repos.Payments,
		drivers:      repos.Drivers,
		distance:     distance,
		matcher:      matcher,
		events:       events,
		trm:          trm,
		log:          log,
	}
}

// Quote prices a trip without writing anything. With JoinSharedRideID set it
// prices joining that ride against its current occupancy.
func (s *Service) Quote(ctx context.Context, req *models.TripRequest) (*models.FareQuote, error) {
	ctx = wrap.WithAction(ctx, types.ActionQuoteFare)

	if err := validateQuote(req); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if req.IsJoin() {
		primary, err := s.openPrimary(ctx, *req.JoinSharedRideID, s.bookings.Get)
		if err != nil {
			return nil, wrap.Error(ctx, err)
		}
		if primary.UserID == req.UserID {
			return nil, wrap.Error(ctx, types.ErrCannotJoinOwnRide)
		}
		vehicle, err := s.vehicles.Get(ctx, primary.VehicleID)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("failed to get vehicle: %w", err))
		}
		occupied, err := s.occupiedSeats(ctx, primary)
		if err != nil {
			return nil, wrap.Error(ctx, err)
		}
		if err := fare.CheckCapacity(vehicle.Capacity, occupied, req.PassengerCount); err != nil {
			return nil, wrap.Error(ctx, err)
		}

		km, src := s.distance.ForSegment(ctx, req.PickupLocation, req.DropoffLocation, req.SegmentDistance, req.EstimatedDistance)
		quote, err := fare.QuoteJoin(*vehicle, km, req.PassengerCount)
		if err != nil {
			return nil, wrap.Error(ctx, err)
		}
		quote.DistanceSource = src
		quote.AvailableSeats = vehicle.Capacity - occupied - req.PassengerCount
		return &quote, nil
	}

	vehicle, err := s.vehicles.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to get vehicle: %w", err))
	}

	km, src := s.distance.ForNewRide(ctx, req.PickupLocation, req.DropoffLocation, req.EstimatedDistance)
	quote, err := fare.QuoteNewRide(*vehicle, km, req.PassengerCount, req.IsSharedRide)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	quote.DistanceSource = src
	return &quote, nil
}

// FindMatches ranks the open shared rides on the rider's date.
func (s *Service) FindMatches(ctx context.Context, q models.MatchQuery) ([]models.Match, error) {
	ctx = wrap.WithAction(ctx, types.ActionFindMatches)

	if err := validateMatchQuery(q); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	candidates, err := s.bookings.ListOpenShared(ctx, q.Date)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to list open shared rides: %w", err))
	}

	matches := s.matcher.Rank(q, candidates)

	best := string(types.MatchNone)
	if len(matches) > 0 {
		best = string(matches[0].MatchType)
	}
	metrics.MatchLookups.WithLabelValues(best).Inc()

	s.log.Debug(ctx, "shared ride matches ranked", "candidates", len(candidates), "matches", len(matches), "best", best)
	return matches, nil
}

// Create books a new standalone or primary shared ride, or joins a shared ride
// when req.JoinSharedRideID is set.
func (s *Service) Create(ctx context.Context, req *models.TripRequest) (*models.BookingResult, error) {
	if req.IsJoin() {
		return s.Join(ctx, req)
	}

	ctx = wrap.WithAction(ctx, types.ActionCreateBooking)

	if err := validateTrip(req); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	vehicle, err := s.vehicles.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to get vehicle: %w", err))
	}

	km, src := s.distance.ForNewRide(ctx, req.PickupLocation, req.DropoffLocation, req.EstimatedDistance)
	quote, err := fare.QuoteNewRide(*vehicle, km, req.PassengerCount, req.IsSharedRide)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	quote.DistanceSource = src

	b := newBooking(req)
	b.VehicleID = vehicle.ID
	b.EstimatedDistance = quote.Distance
	b.EstimatedFare = quote.AmountDue
	b.FarePerPerson = quote.FarePerSeat
	b.DiscountApplied = quote.DiscountAmount
	b.IsSharedRide = req.IsSharedRide
	b.IsPrimaryBooking = req.IsSharedRide
	b.AvailableSeats = quote.AvailableSeats

	var result models.BookingResult
	err = s.trm.Do(ctx, func(ctx context.Context) error {
		created, err := s.bookings.Create(ctx, b)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		payment, err := s.payments.Create(ctx, newPayment(created))
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		result.Booking, result.Payment = created, payment
		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	ctx = wrap.WithBookingID(ctx, result.Booking.ID.String())
	result.Quote = &quote
	result.Message = createdMessage(&quote)

	metrics.BookingsCreated.WithLabelValues(string(result.Booking.Kind())).Inc()
	s.log.Info(ctx, "booking created",
		"kind", result.Booking.Kind(),
		"seats", result.Booking.PassengerCount,
		"distance_km", quote.Distance,
		"distance_source", quote.DistanceSource,
		"amount_due", quote.AmountDue,
	)
	s.publish(ctx, types.EventBookingCreated, result.Booking)

	return &result, nil
}

// Get returns a booking with its payment and, for a primary, its participant links.
// Only the owner, the assigned driver or an admin may read it.
func (s *Service) Get(ctx context.Context, id uuid.UUID, caller *models.User) (*models.BookingDetails, error) {
	ctx = wrap.WithBookingID(wrap.WithAction(ctx, types.ActionGetBooking), id.String())

	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to get booking: %w", err))
	}

	if err := s.canRead(ctx, b, caller); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	details := &models.BookingDetails{Booking: b}

	payment, err := s.payments.GetByBooking(ctx, id)
	switch {
	case err == nil:
		details.Payment = payment
	case !errors.Is(err, types.ErrNotFound):
		return nil, wrap.Error(ctx, fmt.Errorf("failed to get payment: %w", err))
	}

	if b.IsPrimary() {
		details.Participants, err = s.participants.ListByPrimary(ctx, id)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("failed to list participants: %w", err))
		}
	}

	return details, nil
}

func (s *Service) canRead(ctx context.Context, b *models.Booking, caller *models.User) error {
	switch {
	case caller.IsAnonymous():
		return types.ErrUnauthorized
	case caller.HasRole(types.RoleAdmin), b.UserID == caller.ID:
		return nil
	case caller.HasRole(types.RoleDriver) && b.DriverID != nil && s.drivers != nil:
		d, err := s.drivers.GetByUserID(ctx, caller.ID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return types.ErrForbidden
			}
			return fmt.Errorf("failed to get driver: %w", err)
		}
		if d.ID == *b.DriverID {
			return nil
		}
	}
	return types.ErrForbidden
}

// openPrimary loads a booking through get and checks it is an open shared primary.
func (s *Service) openPrimary(ctx context.Context, id uuid.UUID, get func(context.Context, uuid.UUID) (*models.Booking, error)) (*models.Booking, error) {
	primary, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrSharedRideNotFound
		}
		return nil, fmt.Errorf("failed to get shared ride: %w", err)
	}
	if !primary.IsPrimary() || primary.Status != types.StatusConfirmed {
		return nil, types.ErrSharedRideNotFound
	}
	return primary, nil
}

// occupiedSeats sums the party sizes of the primary and its active participants.
func (s *Service) occupiedSeats(ctx context.Context, primary *models.Booking) (int, error) {
	participants, err := s.bookings.ListParticipants(ctx, primary.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list participants: %w", err)
	}
	return occupancy(primary, participants, uuid.Nil), nil
}

// occupancy counts active party sizes, skipping the booking with id skip.
func occupancy(primary *models.Booking, participants []models.Booking, skip uuid.UUID) int {
	seats := 0
	if primary.Status.IsActive() {
		seats = primary.PassengerCount
	}
	for i := range participants {
		p := &participants[i]
		if p.ID != skip && p.Status.IsActive() {
			seats += p.PassengerCount
		}
	}
	return seats
}
