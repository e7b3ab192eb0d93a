package models

import (
	"github.com/google/uuid"
)

type Vehicle struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	VehicleType string    `json:"vehicle_type"`
	Capacity    int       `json:"capacity"`
	PricePerKm  float64   `json:"price_per_km"`
}

// Route is a known point-to-point distance. Lookups ignore direction.
type Route struct {
	ID           uuid.UUID `json:"id"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	DistanceKm   float64   `json:"distance_km"`
}
