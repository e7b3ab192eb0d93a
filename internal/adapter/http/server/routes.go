package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/cabshare/docs"
	"github.com/Temutjin2k/cabshare/internal/adapter/http/middleware"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware, mode types.ServiceMode, log logger.Logger) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux, mode, log)
	setupMetricsRoute(mux)

	switch mode {
	case types.BookingService:
		setupBookingRoutes(mux, routes, m)
	case types.DriverService:
		setupDriverRoutes(mux, routes, m)
	}
}

// setupBookingRoutes setups routes for booking service
func setupBookingRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	riders := []types.UserRole{types.RolePassenger, types.RoleAdmin}

	mux.Handle("POST /fares/quote", m.RequireRoles(routes.booking.Quote, riders...))                      // Preview a fare
	mux.Handle("GET /rides/shared/matches", m.RequireRoles(routes.booking.FindMatches, riders...))        // Shared rides to join
	mux.Handle("POST /bookings", m.RequireRoles(routes.booking.Create, riders...))                        // Book or join
	mux.Handle("GET /bookings/{booking_id}", m.RequireRoles(routes.booking.Get, riders...))               // Booking details
	mux.Handle("POST /bookings/{booking_id}/cancel", m.RequireRoles(routes.booking.Cancel, riders...))    // Cancel a booking
	mux.Handle("GET /driver/bookings/{booking_id}", m.RequireRoles(routes.booking.Get, types.RoleDriver)) // Assigned driver reads the booking
}

// setupDriverRoutes setups routes for driver service
func setupDriverRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.Handle("POST /driver/bookings/{booking_id}/accept", m.RequireRoles(routes.driver.Accept, types.RoleDriver))        // Accept a booking
	mux.Handle("POST /driver/bookings/{booking_id}/status", m.RequireRoles(routes.driver.AdvanceStatus, types.RoleDriver)) // Report trip progress
}

// setupSwaggerRoutes configures Swagger UI endpoints based on service mode
func setupSwaggerRoutes(mux *http.ServeMux, mode types.ServiceMode, log logger.Logger) {
	var instanceName string

	switch mode {
	case types.BookingService:
		instanceName = docs.BookingInstance
	case types.DriverService:
		instanceName = docs.DriverInstance
	default:
		log.Warn(wrap.WithAction(context.Background(), "setup swagger routes"), "unknown service mode for swagger setup", "mode", mode)
		return
	}

	// Swagger UI endpoint
	swaggerURL := httpSwagger.InstanceName(instanceName)
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
