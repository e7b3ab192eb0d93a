package types

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrNotFound        = errors.New("requested item not found")
	ErrVehicleNotFound = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrRouteNotFound   = fmt.Errorf("route %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrDriverNotFound  = fmt.Errorf("driver %w", ErrNotFound)
	ErrPaymentNotFound = fmt.Errorf("payment %w", ErrNotFound)
	// ErrSharedRideNotFound: the referenced booking is not an open shared primary.
	ErrSharedRideNotFound = fmt.Errorf("shared ride not found or not available: %w", ErrNotFound)

	ErrCapacityExceeded = errors.New("not enough seats available")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrTransientStorage = errors.New("storage temporarily unavailable")

	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrAlreadyAccepted         = errors.New("booking already accepted by a driver")
	ErrCannotJoinOwnRide       = errors.New("cannot join your own shared ride")
	ErrInvalidToken            = fmt.Errorf("invalid token: %w", ErrUnauthorized)
)

// CapacityExceededError carries the seat count the caller can still book.
type CapacityExceededError struct {
	Available int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: requested %d, available %d", ErrCapacityExceeded, e.Requested, e.Available)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

func NewCapacityExceeded(available, requested int) error {
	if available < 0 {
		available = 0
	}
	return &CapacityExceededError{Available: available, Requested: requested}
}

// ValidationError maps field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NewValidationErrors returns nil for an empty map.
func NewValidationErrors(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
