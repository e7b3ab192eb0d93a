package repo

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipantRepo struct {
	db *pgxpool.Pool
}

func NewParticipantRepo(db *pgxpool.Pool) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

func (r *ParticipantRepo) Create(ctx context.Context, p *models.SharedRideParticipant) (*models.SharedRideParticipant, error) {
	const op = "ParticipantRepo.Create"
	query := `
		INSERT INTO shared_ride_participants
			(id, primary_booking_id, participant_booking_id, pickup_location, dropoff_location, fare_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	created := *p
	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		p.ID, p.PrimaryBookingID, p.ParticipantBookingID, p.PickupLocation, p.DropoffLocation, p.FareAmount,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	return &created, nil
}

func (r *ParticipantRepo) ListByPrimary(ctx context.Context, primaryID uuid.UUID) ([]models.SharedRideParticipant, error) {
	const op = "ParticipantRepo.ListByPrimary"
	query := `
		SELECT id, primary_booking_id, participant_booking_id, pickup_location, dropoff_location, fare_amount, created_at
		FROM shared_ride_participants
		WHERE primary_booking_id = $1
		ORDER BY created_at, id`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, primaryID)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	out := make([]models.SharedRideParticipant, 0)
	for rows.Next() {
		var p models.SharedRideParticipant
		if err := rows.Scan(&p.ID, &p.PrimaryBookingID, &p.ParticipantBookingID, &p.PickupLocation, &p.DropoffLocation, &p.FareAmount, &p.CreatedAt); err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return out, nil
}
