package models

import (
	"time"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// Payment is the amount due for one booking. Gateway processing happens elsewhere.
type Payment struct {
	ID        uuid.UUID           `json:"id"`
	BookingID uuid.UUID           `json:"booking_id"`
	UserID    uuid.UUID           `json:"user_id"`
	Amount    float64             `json:"amount"`
	Method    types.PaymentMethod `json:"payment_method"`
	Status    types.PaymentStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}
