package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/cabshare/config"
	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
)

type tokenAuth map[string]*models.User

func (a tokenAuth) RoleCheck(_ context.Context, token string) (*models.User, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, types.ErrInvalidToken
}

type noopBookings struct{}

func (noopBookings) Quote(context.Context, *models.TripRequest) (*models.FareQuote, error) {
	return &models.FareQuote{}, nil
}
func (noopBookings) FindMatches(context.Context, models.MatchQuery) ([]models.Match, error) {
	return nil, nil
}
func (noopBookings) Create(context.Context, *models.TripRequest) (*models.BookingResult, error) {
	return nil, types.ErrTransientStorage
}
func (noopBookings) Get(_ context.Context, id uuid.UUID, _ *models.User) (*models.BookingDetails, error) {
	return &models.BookingDetails{Booking: &models.Booking{ID: id}}, nil
}
func (noopBookings) Cancel(_ context.Context, id uuid.UUID, _ *models.User) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: types.StatusCancelled}, nil
}

func newBookingAPI(t *testing.T) http.Handler {
	t.Helper()

	auth := tokenAuth{
		"rider":  {ID: uuid.New(), Role: types.RolePassenger},
		"driver": {ID: uuid.New(), Role: types.RoleDriver},
	}
	api, err := New(config.Config{Mode: types.BookingService}, noopBookings{}, nil, auth, logger.New(io.Discard, "test", logger.LevelError))
	require.NoError(t, err)
	return api.Handler()
}

func do(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(""))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBookingRoutes(t *testing.T) {
	h := newBookingAPI(t)
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		target string
		token  string
		status int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics is public", http.MethodGet, "/metrics", "", http.StatusOK},
		{"swagger doc", http.MethodGet, "/swagger/doc.json", "", http.StatusOK},
		{"bookings need a token", http.MethodGet, "/bookings/" + id, "", http.StatusUnauthorized},
		{"drivers cannot book", http.MethodGet, "/bookings/" + id, "driver", http.StatusForbidden},
		{"rider reads booking", http.MethodGet, "/bookings/" + id, "rider", http.StatusOK},
		{"rider cancels", http.MethodPost, "/bookings/" + id + "/cancel", "rider", http.StatusOK},
		{"driver reads booking", http.MethodGet, "/driver/bookings/" + id, "driver", http.StatusOK},
		{"driver routes live elsewhere", http.MethodPost, "/driver/bookings/" + id + "/accept", "driver", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/bookings/" + id, "rider", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.target, tt.token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestNew_RequiresServiceOfMode(t *testing.T) {
	log := logger.New(io.Discard, "test", logger.LevelError)

	_, err := New(config.Config{Mode: types.DriverService}, noopBookings{}, nil, tokenAuth{}, log)
	assert.Error(t, err)

	_, err = New(config.Config{Mode: "admin-service"}, noopBookings{}, nil, tokenAuth{}, log)
	assert.Error(t, err)

	_, err = New(config.Config{Mode: types.BookingService}, noopBookings{}, nil, nil, log)
	assert.Error(t, err)
}
