package matcher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/corridor"
)

const date = "2026-11-02"

var base = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

func ride(pickup, dropoff string, seats int, createdMin int) models.Booking {
	return models.Booking{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		PickupLocation:   pickup,
		DropoffLocation:  dropoff,
		PickupDate:       date,
		PassengerCount:   1,
		IsSharedRide:     true,
		IsPrimaryBooking: true,
		AvailableSeats:   seats,
		Status:           types.StatusConfirmed,
		CreatedAt:        base.Add(time.Duration(createdMin) * time.Minute),
	}
}

func TestClassify_Tiers(t *testing.T) {
	m := New(corridor.Default())

	tests := []struct {
		name             string
		q                models.MatchQuery
		ride             models.Booking
		want             types.MatchType
		wantIntermediate string
	}{
		{"exact", models.MatchQuery{Pickup: "Bengaluru", Dropoff: "Mysuru"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchExact, ""},
		{"on the way inside NH44", models.MatchQuery{Pickup: "Tumakuru", Dropoff: "Davangere"}, ride("Bengaluru", "Hubballi", 2, 0), types.MatchOnTheWay, "Tumakuru"},
		{"on the way same pickup", models.MatchQuery{Pickup: "Bengaluru", Dropoff: "Mandya"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchOnTheWay, "Mandya"},
		{"partial shared pickup", models.MatchQuery{Pickup: "Bengaluru", Dropoff: "Udupi"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchPartial, ""},
		{"partial shared dropoff", models.MatchQuery{Pickup: "Kolar", Dropoff: "Mysuru"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchPartial, ""},
		{"none", models.MatchQuery{Pickup: "Udupi", Dropoff: "Karwar"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchNone, ""},
		{"garbage degrades to none", models.MatchQuery{Pickup: "", Dropoff: "???"}, ride("Bengaluru", "Mysuru", 2, 0), types.MatchNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, intermediate := m.Classify(tt.q, &tt.ride)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantIntermediate, intermediate)
		})
	}
}

func TestRank_OrdersAndFilters(t *testing.T) {
	m := New(corridor.Default())
	q := models.MatchQuery{Pickup: "Bengaluru", Dropoff: "Mysuru", Date: date, Seats: 2}

	partialEarly := ride("Bengaluru", "Mandya", 3, 0)
	exactLate := ride("Bengaluru", "Mysuru", 2, 30)
	exactEarly := ride("Bengaluru", "Mysuru", 3, 10)
	onTheWay := ride("Bengaluru", "Mysuru Road", 2, 5)
	full := ride("Bengaluru", "Mysuru", 1, 1)
	unrelated := ride("Udupi", "Karwar", 3, 2)

	otherDate := ride("Bengaluru", "Mysuru", 3, 3)
	otherDate.PickupDate = "2026-11-03"
	notConfirmed := ride("Bengaluru", "Mysuru", 3, 4)
	notConfirmed.Status = types.StatusDriverAssigned
	participant := ride("Bengaluru", "Mysuru", 3, 6)
	parent := uuid.New()
	participant.ParentBookingID = &parent
	participant.IsPrimaryBooking = false

	got := m.Rank(q, []models.Booking{partialEarly, exactLate, full, unrelated, exactEarly, onTheWay, otherDate, notConfirmed, participant})
	require.Len(t, got, 4)

	assert.Equal(t, exactEarly.ID, got[0].Booking.ID)
	assert.Equal(t, exactLate.ID, got[1].Booking.ID)
	assert.Equal(t, onTheWay.ID, got[2].Booking.ID)
	assert.Equal(t, partialEarly.ID, got[3].Booking.ID)

	assert.Equal(t, []int{100, 100, 85, 60}, []int{got[0].Score, got[1].Score, got[2].Score, got[3].Score})
	assert.Equal(t, types.MatchOnTheWay, got[2].MatchType)
	assert.Equal(t, "Mysuru", got[2].IntermediatePoint)
}

func TestRank_ExcludesOwnRides(t *testing.T) {
	m := New(corridor.Default())
	own := ride("Bengaluru", "Mysuru", 3, 0)

	got := m.Rank(models.MatchQuery{Pickup: "Bengaluru", Dropoff: "Mysuru", Date: date, Seats: 1, ExcludeUserID: own.UserID}, []models.Booking{own})
	assert.Empty(t, got)
}

func TestRank_EmptyPool(t *testing.T) {
	got := New(corridor.Default()).Rank(models.MatchQuery{Pickup: "A", Dropoff: "B", Date: date, Seats: 1}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRank_Deterministic(t *testing.T) {
	m := New(corridor.Default())
	q := models.MatchQuery{Pickup: "Tumakuru", Dropoff: "Davangere", Date: date, Seats: 1}
	pool := []models.Booking{ride("Bengaluru", "Hubballi", 2, 0), ride("Tumakuru", "Hubballi", 2, 1), ride("Tumakuru", "Davangere", 2, 2)}

	first := m.Rank(q, pool)
	for range 20 {
		assert.Equal(t, first, m.Rank(q, pool))
	}
	require.Len(t, first, 3)
	assert.Equal(t, types.MatchExact, first[0].MatchType)
	assert.Equal(t, types.MatchOnTheWay, first[1].MatchType)
	assert.Equal(t, types.MatchOnTheWay, first[2].MatchType)
}
