package booking

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

type BookingRepo interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// GetForUpdate locks the booking row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// ListOpenShared returns confirmed shared primaries with free seats on date.
	ListOpenShared(ctx context.Context, date string) ([]models.Booking, error)
	// ListParticipants returns every participant booking of a primary, in any status.
	ListParticipants(ctx context.Context, primaryID uuid.UUID) ([]models.Booking, error)
	SetAvailableSeats(ctx context.Context, id uuid.UUID, seats int) error
	SetStatus(ctx context.Context, ids []uuid.UUID, status types.BookingStatus) error
}

type ParticipantRepo interface {
	Create(ctx context.Context, p *models.SharedRideParticipant) (*models.SharedRideParticipant, error)
	ListByPrimary(ctx context.Context, primaryID uuid.UUID) ([]models.SharedRideParticipant, error)
}

type VehicleRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	CancelPending(ctx context.Context, bookingIDs []uuid.UUID) error
}

type DriverRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
}

type DistanceResolver interface {
	ForNewRide(ctx context.Context, pickup, dropoff string, override *float64) (float64, types.DistanceSource)
	ForSegment(ctx context.Context, pickup, dropoff string, override, supplied *float64) (float64, types.DistanceSource)
}

type Matcher interface {
	Rank(q models.MatchQuery, candidates []models.Booking) []models.Match
}

type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}

// Repositories groups the storage ports of the service.
type Repositories struct {
	Bookings     BookingRepo
	Participants ParticipantRepo
	Vehicles     VehicleRepo
	Payments     PaymentRepo
	Drivers      DriverRepo
}
