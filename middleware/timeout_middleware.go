package middleware

import (
	"context"
	"time"

	smserrors "sms-viewer/errors"
	"sms-viewer/message"
)

func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *message.Call) *message.Response {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan *message.Response, 1)
			go func() {
				done <- next(ctx, call)
			}()

			select {
			case resp := <-done:
				return resp
			case <-ctx.Done():
				return &message.Response{Err: smserrors.Wrap(call.Operation, smserrors.ErrTimeout)}
			}
		}
	}
}
