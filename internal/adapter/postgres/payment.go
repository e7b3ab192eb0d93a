package repo

import (
	"context"
	"errors"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	const op = "PaymentRepo.Create"
	query := `
		INSERT INTO payments (id, booking_id, user_id, amount, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	created := *p
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, p.ID, p.BookingID, p.UserID, p.Amount, p.Method, p.Status).Scan(&created.CreatedAt)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	return &created, nil
}

func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	const op = "PaymentRepo.GetByBooking"
	query := `
		SELECT id, booking_id, user_id, amount, payment_method, status, created_at
		FROM payments
		WHERE booking_id = $1`

	var p models.Payment
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, bookingID).Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.Method, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrPaymentNotFound
		}
		return nil, wrapErr(op, err)
	}

	return &p, nil
}

// CancelPending cancels the still-pending payments of the given bookings. Paid ones are left alone.
func (r *PaymentRepo) CancelPending(ctx context.Context, bookingIDs []uuid.UUID) error {
	const op = "PaymentRepo.CancelPending"
	if len(bookingIDs) == 0 {
		return nil
	}

	query := `
		UPDATE payments
		SET status = 'cancelled'
		WHERE booking_id = ANY($1::uuid[]) AND status = 'pending'`

	if _, err := TxorDB(ctx, r.db).Exec(ctx, query, bookingIDs); err != nil {
		return wrapErr(op, err)
	}
	return nil
}
