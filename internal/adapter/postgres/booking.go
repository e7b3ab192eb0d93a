package repo

import (
	"context"
	"errors"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `
	id, user_id, vehicle_id,
	pickup_location, dropoff_location,
	to_char(pickup_date, 'YYYY-MM-DD'), to_char(pickup_time, 'HH24:MI'),
	passenger_name, passenger_phone, passenger_count, special_requests,
	estimated_distance, estimated_fare, fare_per_person, discount_applied,
	is_shared_ride, is_primary_booking, parent_booking_id, available_seats,
	route_segment_start, route_segment_end,
	status, payment_method,
	driver_id, driver_name, driver_phone, vehicle_number,
	created_at, updated_at`

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.VehicleID,
		&b.PickupLocation, &b.DropoffLocation,
		&b.PickupDate, &b.PickupTime,
		&b.PassengerName, &b.PassengerPhone, &b.PassengerCount, &b.SpecialRequests,
		&b.EstimatedDistance, &b.EstimatedFare, &b.FarePerPerson, &b.DiscountApplied,
		&b.IsSharedRide, &b.IsPrimaryBooking, &b.ParentBookingID, &b.AvailableSeats,
		&b.RouteSegmentStart, &b.RouteSegmentEnd,
		&b.Status, &b.PaymentMethod,
		&b.DriverID, &b.DriverName, &b.DriverPhone, &b.VehicleNumber,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	const op = "BookingRepo.Create"
	query := `
		INSERT INTO bookings (
			id, user_id, vehicle_id,
			pickup_location, dropoff_location, pickup_date, pickup_time,
			passenger_name, passenger_phone, passenger_count, special_requests,
			estimated_distance, estimated_fare, fare_per_person, discount_applied,
			is_shared_ride, is_primary_booking, parent_booking_id, available_seats,
			route_segment_start, route_segment_end,
			status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING ` + bookingColumns

	created, err := scanBooking(TxorDB(ctx, r.db).QueryRow(ctx, query,
		b.ID, b.UserID, b.VehicleID,
		b.PickupLocation, b.DropoffLocation, b.PickupDate, b.PickupTime,
		b.PassengerName, b.PassengerPhone, b.PassengerCount, b.SpecialRequests,
		b.EstimatedDistance, b.EstimatedFare, b.FarePerPerson, b.DiscountApplied,
		b.IsSharedRide, b.IsPrimaryBooking, b.ParentBookingID, b.AvailableSeats,
		b.RouteSegmentStart, b.RouteSegmentEnd,
		b.Status, b.PaymentMethod,
	))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, wrapErr(op, types.ErrVehicleNotFound)
		}
		return nil, wrapErr(op, err)
	}

	return created, nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.get(ctx, "BookingRepo.Get", `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.get(ctx, "BookingRepo.GetForUpdate", `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepo) get(ctx context.Context, op, query string, id uuid.UUID) (*models.Booking, error) {
	b, err := scanBooking(TxorDB(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrBookingNotFound
		}
		return nil, wrapErr(op, err)
	}
	return b, nil
}

// ListOpenShared returns confirmed shared primaries with free seats on date, oldest first.
func (r *BookingRepo) ListOpenShared(ctx context.Context, date string) ([]models.Booking, error) {
	const op = "BookingRepo.ListOpenShared"
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE is_shared_ride AND is_primary_booking
			AND status = 'confirmed'
			AND available_seats > 0
			AND pickup_date = $1::date
		ORDER BY created_at, id`

	return r.list(ctx, op, query, date)
}

func (r *BookingRepo) ListParticipants(ctx context.Context, primaryID uuid.UUID) ([]models.Booking, error) {
	const op = "BookingRepo.ListParticipants"
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE parent_booking_id = $1
		ORDER BY created_at, id`

	return r.list(ctx, op, query, primaryID)
}

func (r *BookingRepo) list(ctx context.Context, op, query string, args ...any) ([]models.Booking, error) {
	rows, err := TxorDB(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	out := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return out, nil
}

func (r *BookingRepo) SetAvailableSeats(ctx context.Context, id uuid.UUID, seats int) error {
	const op = "BookingRepo.SetAvailableSeats"
	query := `
		UPDATE bookings
		SET available_seats = $2, updated_at = now()
		WHERE id = $1 AND is_primary_booking`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, id, seats)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) SetStatus(ctx context.Context, ids []uuid.UUID, status types.BookingStatus) error {
	const op = "BookingRepo.SetStatus"
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = ANY($1::uuid[])`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, ids, status)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return types.ErrBookingNotFound
	}
	return nil
}

// AssignDriver takes a confirmed, unassigned booking for d. It reports false when
// the booking was not in that state.
func (r *BookingRepo) AssignDriver(ctx context.Context, id uuid.UUID, d *models.Driver) (bool, error) {
	const op = "BookingRepo.AssignDriver"
	query := `
		UPDATE bookings
		SET driver_id = $2, driver_name = $3, driver_phone = $4, vehicle_number = $5,
			status = 'driver_assigned', updated_at = now()
		WHERE id = $1 AND status = 'confirmed' AND driver_id IS NULL`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, id, d.ID, d.Name, d.Phone, d.VehicleNumber)
	if err != nil {
		return false, wrapErr(op, err)
	}
	return tag.RowsAffected() == 1, nil
}
