package middleware

import (
	"context"

	"github.com/google/uuid"

	"sms-viewer/message"
)

// RequestIDMiddleware tags each call so client and store logs can be joined.
func RequestIDMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *message.Call) *message.Response {
			if call.RequestID == "" {
				call.RequestID = uuid.NewString()
			}
			return next(ctx, call)
		}
	}
}
