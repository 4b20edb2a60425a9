package safe

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Call runs fn synchronously and converts a panic into an error. The
// scheduler loop wraps every analysis cycle with it so a panicking cycle is
// logged and skipped while the loop keeps ticking.
func Call(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			ctxlog.From(ctx).Error("Panic in cycle",
				"recover", r,
				"stack", string(stack),
			)
			err = goerr.New("cycle panicked", goerr.V("recover", r))
		}
	}()

	return fn(ctx)
}
