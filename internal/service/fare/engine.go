package fare

import (
	"math"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
)

const (
	// SharedRideDiscount applies to every shared fare, creator and joiners alike.
	SharedRideDiscount = 0.30

	DefaultNewRideDistanceKm = 100.0
	DefaultSegmentDistanceKm = 50.0
)

func validate(v models.Vehicle, distance float64, seats int) error {
	fields := map[string]string{}
	if v.Capacity <= 0 {
		fields["vehicle.capacity"] = "must be greater than zero"
	}
	if v.PricePerKm < 0 || math.IsNaN(v.PricePerKm) {
		fields["vehicle.price_per_km"] = "must not be negative"
	}
	if distance <= 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		fields["distance"] = "must be greater than zero"
	}
	if seats <= 0 {
		fields["passenger_count"] = "must be at least 1"
	}
	return types.NewValidationErrors(fields)
}

// QuoteNewRide prices a ride for its first party.
// A private fare is the full distance fare whatever the seat count. A shared fare
// discounts the full-vehicle fare, splits it over the vehicle capacity and charges
// the creator for the seats they take.
func QuoteNewRide(v models.Vehicle, distance float64, seats int, shared bool) (models.FareQuote, error) {
	if err := validate(v, distance, seats); err != nil {
		return models.FareQuote{}, err
	}
	if seats > v.Capacity {
		return models.FareQuote{}, types.NewCapacityExceeded(v.Capacity, seats)
	}

	baseFare := distance * v.PricePerKm
	q := models.FareQuote{
		Shared:     shared,
		Seats:      seats,
		Distance:   distance,
		PricePerKm: v.PricePerKm,
		BaseFare:   baseFare,
	}

	if !shared {
		q.DiscountedTotal = baseFare
		q.FarePerSeat = baseFare / float64(seats)
		q.AmountDue = baseFare
		return q, nil
	}

	q.DiscountedTotal = baseFare * (1 - SharedRideDiscount)
	q.DiscountAmount = baseFare * SharedRideDiscount
	q.FarePerSeat = q.DiscountedTotal / float64(v.Capacity)
	q.AmountDue = q.FarePerSeat * float64(seats)
	q.AvailableSeats = v.Capacity - seats
	return q, nil
}

// QuoteJoin prices a joiner for their own segment on the primary ride's vehicle.
// The joiner pays the discounted segment fare in total for all their seats.
func QuoteJoin(v models.Vehicle, segmentDistance float64, seats int) (models.FareQuote, error) {
	if err := validate(v, segmentDistance, seats); err != nil {
		return models.FareQuote{}, err
	}

	baseFare := segmentDistance * v.PricePerKm
	discount := baseFare * SharedRideDiscount
	segmentFare := baseFare - discount

	return models.FareQuote{
		Shared:          true,
		Seats:           seats,
		Distance:        segmentDistance,
		PricePerKm:      v.PricePerKm,
		BaseFare:        baseFare,
		DiscountAmount:  discount,
		DiscountedTotal: segmentFare,
		FarePerSeat:     segmentFare / float64(seats),
		AmountDue:       segmentFare,
	}, nil
}

// CheckCapacity rejects a party of requested seats when occupied+requested exceeds capacity.
func CheckCapacity(capacity, occupied, requested int) error {
	if capacity <= 0 {
		return types.NewValidationError("vehicle.capacity", "must be greater than zero")
	}
	if requested <= 0 {
		return types.NewValidationError("passenger_count", "must be at least 1")
	}
	if occupied+requested > capacity {
		return types.NewCapacityExceeded(capacity-occupied, requested)
	}
	return nil
}

// Round rounds an amount to the nearest currency unit for display.
func Round(amount float64) float64 {
	return math.Round(amount)
}
