package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogger_InjectsContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "booking-service", LevelDebug)

	ctx := wrap.WithAction(context.Background(), "join_shared_ride")
	ctx = wrap.WithBookingID(ctx, "b-1")
	ctx = wrap.WithRequestID(ctx, "r-1")

	l.Info(ctx, "joined", "seats", 2)

	line := decodeLine(t, &buf)
	assert.Equal(t, "joined", line["message"])
	assert.Equal(t, "booking-service", line["service"])
	assert.Equal(t, "join_shared_ride", line["action"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.Equal(t, "r-1", line["request_id"])
	assert.EqualValues(t, 2, line["seats"])
	assert.Contains(t, line, "timestamp")
	assert.NotContains(t, line, "user_id")
}

func TestLogger_ErrorRestoresWrappedContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "svc", LevelDebug)

	inner := wrap.WithAction(context.Background(), "lock_primary")
	err := wrap.Error(inner, errors.New("boom"))

	outer := wrap.WithRequestID(context.Background(), "r-9")
	l.Error(wrap.ErrorCtx(outer, err), "join failed", err)

	line := decodeLine(t, &buf)
	assert.Equal(t, "lock_primary", line["action"])
	assert.Equal(t, "r-9", line["request_id"])
	require.IsType(t, map[string]any{}, line["error"])
	assert.Equal(t, "boom", line["error"].(map[string]any)["msg"])
	assert.Equal(t, "join failed", line["message"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "svc", LevelWarn)

	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}

func TestValidateLogLevel(t *testing.T) {
	assert.True(t, ValidateLogLevel(LevelInfo))
	assert.False(t, ValidateLogLevel("TRACE"))
}
