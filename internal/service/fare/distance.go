package fare

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
)

// LiveDistance measures road distance with an external provider.
type LiveDistance interface {
	DistanceKm(ctx context.Context, from, to string) (float64, error)
}

// RouteLookup finds a distance in the Route table, ignoring direction.
type RouteLookup interface {
	RouteDistance(ctx context.Context, from, to string) (km float64, found bool, err error)
}

// Estimator is the static corridor distance table.
type Estimator interface {
	EstimateDistance(from, to string) (float64, bool)
}

// Resolver picks a trip distance from the first source that knows it.
// It never fails: missing or failing sources fall through to a fixed default.
type Resolver struct {
	live      LiveDistance
	routes    RouteLookup
	estimator Estimator
	log       logger.Logger
}

// NewResolver builds a resolver. live may be nil when no provider is configured.
func NewResolver(live LiveDistance, routes RouteLookup, estimator Estimator, log logger.Logger) *Resolver {
	return &Resolver{
		live:      live,
		routes:    routes,
		estimator: estimator,
		log:       log,
	}
}

// ForNewRide: override, live, route table, corridor estimate, 100 km.
func (r *Resolver) ForNewRide(ctx context.Context, pickup, dropoff string, override *float64) (float64, types.DistanceSource) {
	return r.resolve(ctx, pickup, dropoff, override, nil, DefaultNewRideDistanceKm)
}

// ForSegment: override, live, route table, the joiner's own estimate, corridor estimate, 50 km.
func (r *Resolver) ForSegment(ctx context.Context, pickup, dropoff string, override, supplied *float64) (float64, types.DistanceSource) {
	return r.resolve(ctx, pickup, dropoff, override, supplied, DefaultSegmentDistanceKm)
}

func (r *Resolver) resolve(ctx context.Context, from, to string, override, supplied *float64, fallback float64) (float64, types.DistanceSource) {
	ctx = wrap.WithAction(ctx, types.ActionResolveDistance)

	km, src := r.lookup(ctx, from, to, override, supplied)
	if src == "" {
		km, src = fallback, types.SourceDefault
		r.log.Warn(ctx, "no distance source knows the trip, using default", "from", from, "to", to, "km", km)
	}

	metrics.DistanceResolutions.WithLabelValues(string(src)).Inc()
	return km, src
}

func (r *Resolver) lookup(ctx context.Context, from, to string, override, supplied *float64) (float64, types.DistanceSource) {
	if positive(override) {
		return *override, types.SourceOverride
	}

	if r.live != nil {
		km, err := r.live.DistanceKm(ctx, from, to)
		switch {
		case err != nil:
			r.log.Warn(wrap.WithAction(ctx, types.ActionExternalServiceFailed), "live distance lookup failed", "error", err.Error())
		case km > 0:
			return km, types.SourceLive
		}
	}

	if r.routes != nil {
		km, found, err := r.routes.RouteDistance(ctx, from, to)
		switch {
		case err != nil:
			r.log.Error(wrap.ErrorCtx(ctx, err), "route table lookup failed", err)
		case found && km > 0:
			return km, types.SourceRoute
		}
	}

	if positive(supplied) {
		return *supplied, types.SourceSupplied
	}

	if r.estimator != nil {
		if km, ok := r.estimator.EstimateDistance(from, to); ok {
			return km, types.SourceCorridor
		}
	}

	return 0, ""
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
