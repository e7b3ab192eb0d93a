package microservices

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/cabshare/config"
	"github.com/Temutjin2k/cabshare/internal/adapter/googlemaps"
	httpserver "github.com/Temutjin2k/cabshare/internal/adapter/http/server"
	repo "github.com/Temutjin2k/cabshare/internal/adapter/postgres"
	rediscache "github.com/Temutjin2k/cabshare/internal/adapter/redis"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/internal/service/booking"
	"github.com/Temutjin2k/cabshare/internal/service/corridor"
	"github.com/Temutjin2k/cabshare/internal/service/fare"
	"github.com/Temutjin2k/cabshare/internal/service/matcher"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	redisclient "github.com/Temutjin2k/cabshare/pkg/redis"
	"github.com/Temutjin2k/cabshare/pkg/trm"

	goredis "github.com/redis/go-redis/v9"
)

type BookingService struct {
	infra      *infra
	redis      *goredis.Client
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func NewBooking(ctx context.Context, cfg config.Config, log logger.Logger) (*BookingService, error) {
	corridors, err := loadCorridors(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	in, err := newInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	db := in.postgresDB.Pool

	live, redisClient, err := newLiveDistance(ctx, cfg, log)
	if err != nil {
		in.close(ctx, nil, log)
		return nil, err
	}

	// repositories
	routeRepo := repo.NewRouteRepo(db)
	repos := booking.Repositories{
		Bookings:     repo.NewBookingRepo(db),
		Participants: repo.NewParticipantRepo(db),
		Vehicles:     repo.NewVehicleRepo(db),
		Payments:     repo.NewPaymentRepo(db),
		Drivers:      repo.NewDriverRepo(db),
	}

	var events booking.EventPublisher
	if in.events != nil {
		events = in.events
	}

	// services
	bookingSvc := booking.NewService(
		repos,
		fare.NewResolver(live, routeRepo, corridors, log),
		matcher.New(corridors),
		events,
		trm.New(db),
		log,
	)

	server, err := httpserver.New(cfg, bookingSvc, nil, newAuthService(cfg, log), log)
	if err != nil {
		in.close(ctx, nil, log)
		return nil, err
	}

	return &BookingService{
		infra:      in,
		redis:      redisClient,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *BookingService) Start(ctx context.Context) error {
	defer func() {
		s.infra.close(ctx, s.httpServer, s.log)
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				s.log.Error(ctx, "failed to close redis", err)
			}
		}
		s.log.Info(ctx, "booking service closed")
	}()

	return serve(ctx, s.httpServer, s.log)
}

func loadCorridors(ctx context.Context, cfg config.Config, log logger.Logger) (*corridor.Model, error) {
	ctx = wrap.WithAction(ctx, types.ActionLoadReferenceData)

	if cfg.ReferenceData.CorridorsPath == "" {
		log.Info(ctx, "using built-in Karnataka corridors")
		return corridor.Default(), nil
	}

	model, err := corridor.Load(cfg.ReferenceData.CorridorsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load corridors: %w", err)
	}
	log.Info(ctx, "corridors loaded", "path", cfg.ReferenceData.CorridorsPath, "corridors", len(model.Corridors()))
	return model, nil
}

// newLiveDistance builds Google Maps, optionally behind the Redis cache. Without
// an API key it returns nil and distances come from the route table and corridors.
func newLiveDistance(ctx context.Context, cfg config.Config, log logger.Logger) (fare.LiveDistance, *goredis.Client, error) {
	if cfg.Maps.APIKey == "" {
		log.Warn(ctx, "maps api key not set, live distance disabled")
		return nil, nil, nil
	}

	maps, err := googlemaps.NewDistanceService(googlemaps.Config{
		APIKey:      cfg.Maps.APIKey,
		PlaceSuffix: cfg.Maps.PlaceSuffix,
		Timeout:     cfg.Maps.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}

	if cfg.Redis.Addr == "" {
		return maps, nil, nil
	}

	client, err := redisclient.New(ctx, redisclient.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// the cache is optional; run uncached rather than refuse to start
		log.Error(wrap.WithAction(ctx, types.ActionExternalServiceFailed), "redis unavailable, distance cache disabled", err)
		return maps, nil, nil
	}

	return rediscache.NewDistanceCache(client, maps, cfg.Redis.DistanceCacheTTL, log), client, nil
}
