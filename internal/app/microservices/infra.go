package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Temutjin2k/cabshare/config"
	httpserver "github.com/Temutjin2k/cabshare/internal/adapter/http/server"
	rabbitadapter "github.com/Temutjin2k/cabshare/internal/adapter/rabbit"
	"github.com/Temutjin2k/cabshare/internal/service/auth"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	postgresclient "github.com/Temutjin2k/cabshare/pkg/postgres"
	"github.com/Temutjin2k/cabshare/pkg/rabbit"
)

// infra holds the connections both services share.
type infra struct {
	postgresDB *postgresclient.PostgreDB
	rabbit     *rabbit.RabbitMQ
	// events is nil when RabbitMQ is disabled
	events *rabbitadapter.BookingPublisher
}

func newInfra(ctx context.Context, cfg config.Config, log logger.Logger) (*infra, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	in := &infra{postgresDB: db}

	if !cfg.RabbitMQ.Enabled {
		log.Warn(ctx, "rabbitmq disabled, booking events will not be published")
		return in, nil
	}

	client, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log, rabbitadapter.BookingExchange)
	if err != nil {
		db.Pool.Close()
		return nil, err
	}
	in.rabbit = client
	in.events = rabbitadapter.NewBookingPublisher(client, log)

	return in, nil
}

func newAuthService(cfg config.Config, log logger.Logger) *auth.AuthService {
	return auth.NewAuthService(auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer), log)
}

// serve runs the HTTP server until it fails or the process is signalled.
func serve(ctx context.Context, server *httpserver.API, log logger.Logger) error {
	errCh := make(chan error, 1)
	server.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

// close stops the server, if any, and releases the connections.
func (in *infra) close(ctx context.Context, server *httpserver.API, log logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if server != nil {
		if err := server.Stop(ctx); err != nil {
			log.Error(ctx, "failed to shutdown HTTP server", err)
		}
	}

	if in.rabbit != nil {
		if err := in.rabbit.Close(ctx); err != nil {
			log.Error(ctx, "failed to close rabbitmq", err)
		}
	}

	in.postgresDB.Pool.Close()
}
