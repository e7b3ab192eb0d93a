package wrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLogCtx_Merges(t *testing.T) {
	ctx := WithUserID(context.Background(), "u-1")
	ctx = WithAction(ctx, "create_booking")
	ctx = WithBookingID(ctx, "b-1")

	lc, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, LogCtx{Action: "create_booking", UserID: "u-1", BookingID: "b-1"}, lc)
}

func TestError_KeepsChainAndContext(t *testing.T) {
	sentinel := errors.New("not found")
	ctx := WithAction(context.Background(), "get_vehicle")

	err := Error(ctx, fmt.Errorf("repo: %w", sentinel))
	assert.ErrorIs(t, err, sentinel)

	// rewrapping refreshes the context instead of nesting
	ctx2 := WithAction(context.Background(), "create_booking")
	err2 := Error(ctx2, fmt.Errorf("service: %w", err))
	assert.ErrorIs(t, err2, sentinel)

	lc, _ := FromContext(ErrorCtx(context.Background(), err2))
	assert.Equal(t, "create_booking", lc.Action)
}

func TestError_Nil(t *testing.T) {
	assert.NoError(t, Error(context.Background(), nil))
}
