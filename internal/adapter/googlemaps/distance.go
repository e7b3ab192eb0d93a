package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("no driving route found")

type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty uses Google's.
	BaseURL string
	// PlaceSuffix is appended to bare place names, e.g. ", Karnataka, India",
	// so that short names resolve inside the state.
	PlaceSuffix string
	Timeout     time.Duration
}

// DistanceService measures driving distance with the Distance Matrix API.
type DistanceService struct {
	client *maps.Client
	cfg    Config
}

func NewDistanceService(cfg Config) (*DistanceService, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client, cfg: cfg}, nil
}

// DistanceKm returns the driving distance from one place to another in km.
func (s *DistanceService) DistanceKm(ctx context.Context, from, to string) (float64, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	r := &maps.DistanceMatrixRequest{
		Origins:      []string{s.place(from)},
		Destinations: []string{s.place(to)},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" || el.Distance.Meters <= 0 {
		return 0, fmt.Errorf("%w: element status %s", ErrNoRoute, el.Status)
	}

	return float64(el.Distance.Meters) / 1000, nil
}

func (s *DistanceService) place(name string) string {
	name = strings.TrimSpace(name)
	if s.cfg.PlaceSuffix == "" || strings.Contains(strings.ToLower(name), strings.ToLower(strings.Trim(s.cfg.PlaceSuffix, ", "))) {
		return name
	}
	return name + s.cfg.PlaceSuffix
}
