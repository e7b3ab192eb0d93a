package microservices

import (
	"context"

	"github.com/Temutjin2k/cabshare/config"
	httpserver "github.com/Temutjin2k/cabshare/internal/adapter/http/server"
	repo "github.com/Temutjin2k/cabshare/internal/adapter/postgres"
	"github.com/Temutjin2k/cabshare/internal/service/driver"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	"github.com/Temutjin2k/cabshare/pkg/trm"
)

type DriverService struct {
	infra      *infra
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func NewDriver(ctx context.Context, cfg config.Config, log logger.Logger) (*DriverService, error) {
	in, err := newInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	db := in.postgresDB.Pool

	var events driver.Publisher
	if in.events != nil {
		events = in.events
	}

	driverSvc := driver.New(repo.NewDriverRepo(db), repo.NewBookingRepo(db), events, trm.New(db), log)

	server, err := httpserver.New(cfg, nil, driverSvc, newAuthService(cfg, log), log)
	if err != nil {
		in.close(ctx, nil, log)
		return nil, err
	}

	return &DriverService{
		infra:      in,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *DriverService) Start(ctx context.Context) error {
	defer func() {
		s.infra.close(ctx, s.httpServer, s.log)
		s.log.Info(ctx, "driver service closed")
	}()

	return serve(ctx, s.httpServer, s.log)
}
