package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
)

type sharedRide struct {
	owner        *models.User
	primary      *models.Booking
	participants []*models.Booking
	riders       []*models.User
}

// rideWithParticipants books a 4-seat shared ride: primary of 1 seat plus joiners of 1 and 2 seats.
func rideWithParticipants(t *testing.T, f *fixture) sharedRide {
	t.Helper()
	ctx := context.Background()
	vehicle := f.addVehicle(4, 15)

	r := sharedRide{owner: &models.User{ID: uuid.New(), Role: types.RolePassenger}}
	res, err := f.svc.Create(ctx, trip(r.owner.ID, vehicle, "Bengaluru", "Mysuru", 1, true))
	require.NoError(t, err)
	r.primary = res.Booking

	for _, seats := range []int{1, 2} {
		rider := &models.User{ID: uuid.New(), Role: types.RolePassenger}
		res, err := f.svc.Join(ctx, joinTrip(rider.ID, r.primary.ID, "Bengaluru", "Mandya", seats))
		require.NoError(t, err)
		r.participants = append(r.participants, res.Booking)
		r.riders = append(r.riders, rider)
	}
	require.Equal(t, 0, f.store.booking(r.primary.ID).AvailableSeats)
	return r
}

func TestCancel_PrimaryCascadesToParticipants(t *testing.T) {
	f := newFixture()
	r := rideWithParticipants(t, f)

	got, err := f.svc.Cancel(context.Background(), r.primary.ID, r.owner)
	require.NoError(t, err)
	assert.Equal(t, r.primary.ID, got.ID)
	assert.Equal(t, types.StatusCancelled, got.Status)

	primary := f.store.booking(r.primary.ID)
	assert.Equal(t, types.StatusCancelled, primary.Status)
	assert.Equal(t, 0, primary.AvailableSeats)

	for _, p := range append([]*models.Booking{r.primary}, r.participants...) {
		assert.Equal(t, types.StatusCancelled, f.store.booking(p.ID).Status)
		assert.Equal(t, types.PaymentCancelled, f.store.payments[p.ID].Status)
	}

	_, links, _ := f.store.count()
	assert.Equal(t, 2, links, "participant links are kept")

	events := f.events.eventTypes()
	assert.Equal(t, []types.BookingEvent{types.EventBookingCanceled, types.EventBookingCanceled, types.EventBookingCanceled}, events[len(events)-3:])
}

func TestCancel_ParticipantReleasesSeats(t *testing.T) {
	f := newFixture()
	r := rideWithParticipants(t, f)
	ctx := context.Background()

	_, err := f.svc.Cancel(ctx, r.participants[1].ID, r.riders[1])
	require.NoError(t, err)

	assert.Equal(t, types.StatusCancelled, f.store.booking(r.participants[1].ID).Status)
	assert.Equal(t, types.PaymentCancelled, f.store.payments[r.participants[1].ID].Status)
	assert.Equal(t, types.StatusConfirmed, f.store.booking(r.participants[0].ID).Status)
	assert.Equal(t, 2, f.store.booking(r.primary.ID).AvailableSeats)

	// freed seats can be booked again
	_, err = f.svc.Join(ctx, joinTrip(uuid.New(), r.primary.ID, "Bengaluru", "Mysuru", 2))
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.booking(r.primary.ID).AvailableSeats)
}

func TestCancel_ParticipantOfClosedRideKeepsSeatsClosed(t *testing.T) {
	f := newFixture()
	r := rideWithParticipants(t, f)

	b := f.store.bookings[r.primary.ID]
	b.Status = types.StatusDriverAssigned
	f.store.bookings[b.ID] = b

	_, err := f.svc.Cancel(context.Background(), r.participants[0].ID, r.riders[0])
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.booking(r.primary.ID).AvailableSeats)
}

func TestCancel_Rejections(t *testing.T) {
	f := newFixture()
	r := rideWithParticipants(t, f)
	ctx := context.Background()

	t.Run("stranger", func(t *testing.T) {
		_, err := f.svc.Cancel(ctx, r.primary.ID, &models.User{ID: uuid.New(), Role: types.RolePassenger})
		require.ErrorIs(t, err, types.ErrForbidden)
		assert.Equal(t, types.StatusConfirmed, f.store.booking(r.primary.ID).Status)
	})

	t.Run("participant cannot cancel the primary", func(t *testing.T) {
		_, err := f.svc.Cancel(ctx, r.primary.ID, r.riders[0])
		require.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.svc.Cancel(ctx, r.primary.ID, models.AnonymousUser())
		require.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.svc.Cancel(ctx, uuid.New(), r.owner)
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("admin may cancel, terminal stays terminal", func(t *testing.T) {
		admin := &models.User{ID: uuid.New(), Role: types.RoleAdmin}
		_, err := f.svc.Cancel(ctx, r.participants[0].ID, admin)
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, r.participants[0].ID, r.riders[0])
		require.ErrorIs(t, err, types.ErrInvalidStatusTransition)
	})
}

func TestCancel_Standalone(t *testing.T) {
	f := newFixture()
	vehicle := f.addVehicle(4, 12)
	owner := &models.User{ID: uuid.New(), Role: types.RolePassenger}

	res, err := f.svc.Create(context.Background(), trip(owner.ID, vehicle, "Hubballi", "Dharwad", 2, false))
	require.NoError(t, err)

	got, err := f.svc.Cancel(context.Background(), res.Booking.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCancelled, got.Status)
	assert.Equal(t, types.PaymentCancelled, f.store.payments[res.Booking.ID].Status)
}
