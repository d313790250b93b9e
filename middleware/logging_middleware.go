package middleware

import (
	"context"
	"log/slog"
	"time"

	"sms-viewer/message"
)

func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, call *message.Call) *message.Response {
			start := time.Now()
			resp := next(ctx, call)
			duration := time.Since(start)
			if resp.Failed() {
				log.Warn("call failed",
					"operation", call.Operation,
					"request_id", call.RequestID,
					"seq", resp.Seq,
					"duration", duration,
					"error", resp.Err,
				)
				return resp
			}
			log.Debug("call done",
				"operation", call.Operation,
				"request_id", call.RequestID,
				"seq", resp.Seq,
				"duration", duration,
				"bytes", len(resp.Payload),
			)
			return resp
		}
	}
}
