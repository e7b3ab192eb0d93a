package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusDriverAssigned, true},
		{StatusDriverAssigned, StatusOnTheWay, true},
		{StatusOnTheWay, StatusPickedUp, true},
		{StatusPickedUp, StatusInTransit, true},
		{StatusInTransit, StatusCompleted, true},

		{StatusPending, StatusCancelled, true},
		{StatusInTransit, StatusCancelled, true},

		{StatusConfirmed, StatusOnTheWay, false},
		{StatusDriverAssigned, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{BookingStatus("teleported"), StatusCancelled, false},
		{StatusConfirmed, BookingStatus("teleported"), false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	for _, s := range ActiveStatuses() {
		assert.True(t, s.IsActive(), s)
	}
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	next, ok := StatusPickedUp.Next()
	require.True(t, ok)
	assert.Equal(t, StatusInTransit, next)

	_, ok = StatusCompleted.Next()
	assert.False(t, ok)
}

func TestMatchScores(t *testing.T) {
	assert.Equal(t, 100, MatchExact.Score())
	assert.Equal(t, 85, MatchOnTheWay.Score())
	assert.Equal(t, 60, MatchPartial.Score())
	assert.Equal(t, 0, MatchNone.Score())
}

func TestTypedErrors(t *testing.T) {
	err := fmt.Errorf("join: %w", NewCapacityExceeded(-1, 2))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 0, capErr.Available)

	verr := NewValidationErrors(map[string]string{"b": "y", "a": "x"})
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Equal(t, "validation failed: a: x; b: y", verr.Error())
	assert.NoError(t, NewValidationErrors(nil))

	assert.ErrorIs(t, ErrSharedRideNotFound, ErrNotFound)
	assert.True(t, errors.Is(ErrInvalidToken, ErrUnauthorized))
}
