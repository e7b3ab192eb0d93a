package wrap

import (
	"context"
)

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		Action    string
		UserID    string
		RequestID string
		BookingID string
	}

	logCtxKeyStruct struct{}
)

// LogCtxKey is the context key under which LogCtx is stored.
var LogCtxKey = &logCtxKeyStruct{}

// FromContext returns the LogCtx stored in ctx.
func FromContext(ctx context.Context) (LogCtx, bool) {
	lc, ok := ctx.Value(LogCtxKey).(LogCtx)
	return lc, ok
}

// WithLogCtx merges newLc into the LogCtx of ctx. Empty fields of newLc keep the existing values.
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	lc, ok := FromContext(ctx)
	if !ok {
		return context.WithValue(ctx, LogCtxKey, newLc)
	}
	if newLc.Action != "" {
		lc.Action = newLc.Action
	}
	if newLc.UserID != "" {
		lc.UserID = newLc.UserID
	}
	if newLc.RequestID != "" {
		lc.RequestID = newLc.RequestID
	}
	if newLc.BookingID != "" {
		lc.BookingID = newLc.BookingID
	}
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	return WithLogCtx(ctx, LogCtx{Action: action})
}

// WithUserID adds or updates the UserID in the LogCtx within the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithLogCtx(ctx, LogCtx{UserID: userID})
}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithLogCtx(ctx, LogCtx{RequestID: requestID})
}

// WithBookingID adds or updates the BookingID in the LogCtx within the context
func WithBookingID(ctx context.Context, bookingID string) context.Context {
	return WithLogCtx(ctx, LogCtx{BookingID: bookingID})
}
