package matcher

import (
	"slices"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// RouteChecker decides corridor containment of a rider segment inside a ride segment.
type RouteChecker interface {
	IsOnRoute(userPickup, userDropoff, ridePickup, rideDropoff string) bool
}

// Matcher ranks open shared rides against a rider's trip. It is pure and safe for concurrent use.
type Matcher struct {
	routes RouteChecker
}

func New(routes RouteChecker) *Matcher {
	return &Matcher{routes: routes}
}

// Classify returns the first tier that applies: exact, on the way, partial, none.
// intermediate is set for on-the-way matches to the rider endpoint that differs
// from the ride's, pickup first.
func (m *Matcher) Classify(q models.MatchQuery, ride *models.Booking) (mt types.MatchType, intermediate string) {
	samePickup := ride.PickupLocation == q.Pickup
	sameDropoff := ride.DropoffLocation == q.Dropoff

	switch {
	case samePickup && sameDropoff:
		return types.MatchExact, ""
	case m.routes != nil && m.routes.IsOnRoute(q.Pickup, q.Dropoff, ride.PickupLocation, ride.DropoffLocation):
		if !samePickup {
			return types.MatchOnTheWay, q.Pickup
		}
		return types.MatchOnTheWay, q.Dropoff
	case samePickup || sameDropoff:
		return types.MatchPartial, ""
	default:
		return types.MatchNone, ""
	}
}

// Rank scores candidates, drops non-matches and rides without enough free seats,
// and orders the rest by score, earliest created first within a score.
// Candidates are expected to be open shared primaries for the rider's date; others are ignored.
func (m *Matcher) Rank(q models.MatchQuery, candidates []models.Booking) []models.Match {
	out := make([]models.Match, 0, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		if !eligible(q, c) {
			continue
		}

		mt, intermediate := m.Classify(q, c)
		if mt == types.MatchNone {
			continue
		}

		out = append(out, models.Match{
			Booking:           *c,
			Score:             mt.Score(),
			MatchType:         mt,
			IntermediatePoint: intermediate,
		})
	}

	slices.SortStableFunc(out, func(a, b models.Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.Booking.CreatedAt.Compare(b.Booking.CreatedAt)
	})

	return out
}

func eligible(q models.MatchQuery, c *models.Booking) bool {
	if !c.IsPrimary() || c.Status != types.StatusConfirmed || c.AvailableSeats <= 0 {
		return false
	}
	if q.Date != "" && c.PickupDate != q.Date {
		return false
	}
	if q.ExcludeUserID != uuid.Nil && c.UserID == q.ExcludeUserID {
		return false
	}
	return c.AvailableSeats >= max(q.Seats, 1)
}
