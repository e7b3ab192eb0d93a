package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepo struct {
	db *pgxpool.Pool
}

func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{db: db}
}

func (r *VehicleRepo) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	const op = "VehicleRepo.Get"
	query := `SELECT id, name, vehicle_type, capacity, price_per_km FROM vehicles WHERE id = $1`

	var v models.Vehicle
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.VehicleType, &v.Capacity, &v.PricePerKm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrVehicleNotFound
		}
		return nil, wrapErr(op, err)
	}

	return &v, nil
}

type RouteRepo struct {
	db *pgxpool.Pool
}

func NewRouteRepo(db *pgxpool.Pool) *RouteRepo {
	return &RouteRepo{db: db}
}

// RouteDistance looks the pair up in either direction, ignoring case.
func (r *RouteRepo) RouteDistance(ctx context.Context, from, to string) (float64, bool, error) {
	const op = "RouteRepo.RouteDistance"
	query := `
		SELECT distance_km
		FROM routes
		WHERE (lower(from_location) = $1 AND lower(to_location) = $2)
			OR (lower(from_location) = $2 AND lower(to_location) = $1)
		LIMIT 1`

	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	var km float64
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, from, to).Scan(&km)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, wrapErr(op, err)
	}

	return km, true, nil
}

type DriverRepo struct {
	db *pgxpool.Pool
}

func NewDriverRepo(db *pgxpool.Pool) *DriverRepo {
	return &DriverRepo{
		db: db,
	}
}

func (r *DriverRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	const op = "DriverRepo.GetByUserID"
	query := `SELECT id, user_id, name, phone, vehicle_number FROM drivers WHERE user_id = $1`

	var d models.Driver
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, userID).Scan(&d.ID, &d.UserID, &d.Name, &d.Phone, &d.VehicleNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrDriverNotFound
		}
		return nil, wrapErr(op, err)
	}

	return &d, nil
}
