package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
)

type stubAuth struct {
	users map[string]*models.User
}

func (a stubAuth) RoleCheck(_ context.Context, token string) (*models.User, error) {
	if u, ok := a.users[token]; ok {
		return u, nil
	}
	return nil, types.ErrInvalidToken
}

var (
	driverUser    = &models.User{ID: uuid.New(), Role: types.RoleDriver}
	passengerUser = &models.User{ID: uuid.New(), Role: types.RolePassenger}
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(stubAuth{users: map[string]*models.User{
		"driver-token":    driverUser,
		"passenger-token": passengerUser,
	}}, logger.New(io.Discard, "test", logger.LevelError))
}

func TestAuthAndRequireRoles(t *testing.T) {
	m := newTestMiddleware()

	var seen *models.User
	protected := m.Auth(m.RequireRoles(func(w http.ResponseWriter, r *http.Request) {
		seen = models.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}, types.RolePassenger, types.RoleAdmin))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer driver-token", http.StatusForbidden},
		{"allowed", "Bearer passenger-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, passengerUser.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	m := newTestMiddleware()

	var fromCtx string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lc, ok := wrap.FromContext(r.Context()); ok {
			fromCtx = lc.RequestID
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", fromCtx)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), fromCtx)
}

func TestRecover(t *testing.T) {
	m := newTestMiddleware()
	h := m.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	m := newTestMiddleware()
	h := m.Recover(m.RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body["request_id"])
	assert.NotEmpty(t, body["error"])
}
