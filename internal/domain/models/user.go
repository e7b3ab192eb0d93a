package models

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/google/uuid"
)

// User is the authenticated caller of a request.
type User struct {
	ID    uuid.UUID      `json:"id"`
	Email string         `json:"email,omitempty"`
	Role  types.UserRole `json:"role"`
}

var anonymous = &User{}

func AnonymousUser() *User {
	return anonymous
}

func (u *User) IsAnonymous() bool {
	return u == nil || u == anonymous || u.ID == uuid.Nil
}

func (u *User) HasRole(role types.UserRole) bool {
	return u != nil && u.Role == role
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the anonymous user when none was set.
func UserFromContext(ctx context.Context) *User {
	if u, ok := ctx.Value(userCtxKey{}).(*User); ok && u != nil {
		return u
	}
	return anonymous
}

// Passenger is the view of a booking owner.
type Passenger struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
}

// Driver is a driver profile linked to a user account.
type Driver struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	VehicleNumber string    `json:"vehicle_number"`
}
