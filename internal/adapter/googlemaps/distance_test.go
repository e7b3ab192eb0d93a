package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, body string, seen *http.Request) *DistanceService {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewDistanceService(Config{
		APIKey:      "AIza-test",
		BaseURL:     srv.URL,
		PlaceSuffix: ", Karnataka, India",
		Timeout:     2 * time.Second,
	})
	require.NoError(t, err)
	return svc
}

func TestDistanceKm(t *testing.T) {
	var seen http.Request
	svc := newTestService(t, `{
		"status": "OK",
		"origin_addresses": ["Bengaluru, Karnataka, India"],
		"destination_addresses": ["Mysuru, Karnataka, India"],
		"rows": [{"elements": [{"status": "OK",
			"distance": {"text": "148 km", "value": 148450},
			"duration": {"text": "3 hours 10 mins", "value": 11400}}]}]
	}`, &seen)

	km, err := svc.DistanceKm(context.Background(), "Bengaluru", "Mysuru")
	require.NoError(t, err)
	assert.InDelta(t, 148.45, km, 1e-9)

	q := seen.URL.Query()
	assert.Equal(t, "Bengaluru, Karnataka, India", q.Get("origins"))
	assert.Equal(t, "Mysuru, Karnataka, India", q.Get("destinations"))
	assert.Equal(t, "driving", q.Get("mode"))
}

func TestDistanceKm_NoRoute(t *testing.T) {
	var seen http.Request
	svc := newTestService(t, `{
		"status": "OK",
		"origin_addresses": [""],
		"destination_addresses": [""],
		"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
	}`, &seen)

	_, err := svc.DistanceKm(context.Background(), "Atlantis", "Mysuru")
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestPlaceSuffixNotRepeated(t *testing.T) {
	svc := &DistanceService{cfg: Config{PlaceSuffix: ", Karnataka, India"}}
	assert.Equal(t, "Hubballi, Karnataka, India", svc.place("Hubballi"))
	assert.Equal(t, "Udupi, Karnataka, India", svc.place(" Udupi, Karnataka, India "))
}
