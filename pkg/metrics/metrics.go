package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_bookings_created_total",
			Help: "Bookings created, by kind (standalone, primary, participant)",
		},
		[]string{"kind"},
	)

	SharedRideJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_shared_ride_joins_total",
			Help: "Join attempts on shared rides, by outcome",
		},
		[]string{"outcome"},
	)

	MatchLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_match_lookups_total",
			Help: "Shared ride match lookups, by best match type found",
		},
		[]string{"best"},
	)

	DistanceResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_distance_resolutions_total",
			Help: "Trip distance resolutions, by source",
		},
		[]string{"source"},
	)

	DistanceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_distance_cache_lookups_total",
			Help: "Live distance cache lookups, by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	BookingStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabshare_booking_status_changes_total",
			Help: "Booking status transitions, by target status",
		},
		[]string{"status"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"exchange", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordJoin records the outcome of a join attempt: "joined", "capacity_exceeded" or "failed".
func RecordJoin(outcome string) {
	SharedRideJoins.WithLabelValues(outcome).Inc()
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(exchange string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(exchange, status).Inc()
}
