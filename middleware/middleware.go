// Package middleware wraps the request client's send path. Handlers run on
// the call's own goroutine, never on the event loop, so they may block.
package middleware

import (
	"context"

	"sms-viewer/message"
)

type HandlerFunc func(ctx context.Context, call *message.Call) *message.Response

type Middleware func(next HandlerFunc) HandlerFunc

// Chain folds middlewares into one: Chain(A, B)(h) runs A, then B, then h.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
