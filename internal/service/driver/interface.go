package driver

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

/*=================Driver Repository======================*/

type DriverRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
}

/*=================Booking Repository=====================*/

type BookingRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListParticipants(ctx context.Context, primaryID uuid.UUID) ([]models.Booking, error)
	// AssignDriver sets the driver and moves the booking to driver_assigned only
	// while it is confirmed and unassigned. It reports whether the row changed.
	AssignDriver(ctx context.Context, id uuid.UUID, driver *models.Driver) (bool, error)
	SetStatus(ctx context.Context, ids []uuid.UUID, status types.BookingStatus) error
}

/*========================Publisher===============================*/

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}
