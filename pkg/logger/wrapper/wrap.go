package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx carries the LogCtx that was active where the error happened.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// Error attaches the LogCtx of ctx to err. A nil err stays nil.
// If err already carries a LogCtx, the innermost one is refreshed instead of nesting.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	lc, _ := FromContext(ctx)

	var e *errorWithLogCtx
	if errors.As(err, &e) {
		e.logCtx = lc
		return err
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: lc,
	}
}

// ErrorCtx returns ctx enriched with the LogCtx carried by err, if any.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		return WithLogCtx(ctx, e.logCtx)
	}
	return ctx
}
