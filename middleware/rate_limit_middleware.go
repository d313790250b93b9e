package middleware

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	smserrors "sms-viewer/errors"
	"sms-viewer/message"
)

// RateLimitMiddleware is a token bucket over the given operations (all of
// them when none are named). A throttled call fails like any other call; it
// is not queued or retried.
func RateLimitMiddleware(r float64, burst int, operations ...string) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *message.Call) *message.Response {
			if len(operations) > 0 && !lo.Contains(operations, call.Operation) {
				return next(ctx, call)
			}
			if !limiter.Allow() {
				return &message.Response{Err: smserrors.Wrap(call.Operation, smserrors.ErrRateLimited)}
			}
			return next(ctx, call)
		}
	}
}
