package middleware

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"

	smserrors "sms-viewer/errors"
	"sms-viewer/message"
)

// echoHandler answers every call with "ok"
func echoHandler(ctx context.Context, call *message.Call) *message.Response {
	return &message.Response{Payload: "ok"}
}

// slowHandler takes 200ms unless its context ends first
func slowHandler(ctx context.Context, call *message.Call) *message.Response {
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
	}
	return &message.Response{Payload: "ok"}
}

func TestLogging(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	handler := LoggingMiddleware(log)(echoHandler)

	resp := handler(context.Background(), message.NewCall(message.MethodRead, "getShortMessagesAsString"))

	if resp == nil {
		t.Fatal("expect non-nil response")
	}
	if resp.Payload != "ok" {
		t.Fatalf("expect payload 'ok', got '%s'", resp.Payload)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware()(func(ctx context.Context, call *message.Call) *message.Response {
		seen = call.RequestID
		return &message.Response{}
	})

	handler(context.Background(), message.NewCall(message.MethodRead, "getShortMessagesAsString"))
	if seen == "" {
		t.Fatal("expect a request id to be assigned")
	}

	call := message.NewCall(message.MethodRead, "getShortMessagesAsString")
	call.RequestID = "fixed"
	handler(context.Background(), call)
	if seen != "fixed" {
		t.Fatalf("expect existing request id to be kept, got '%s'", seen)
	}
}

func TestTimeoutPass(t *testing.T) {
	// 500ms budget, fast handler
	handler := TimeOutMiddleware(500 * time.Millisecond)(echoHandler)

	resp := handler(context.Background(), message.NewCall(message.MethodRead, "getShortMessagesAsString"))

	if resp.Err != nil {
		t.Fatalf("expect no error, got '%v'", resp.Err)
	}
}

func TestTimeoutExceeded(t *testing.T) {
	// 50ms budget, handler needs 200ms
	handler := TimeOutMiddleware(50 * time.Millisecond)(slowHandler)

	resp := handler(context.Background(), message.NewCall(message.MethodRead, "getShortMessagesAsString"))

	if !errors.Is(resp.Err, smserrors.ErrTimeout) {
		t.Fatalf("expect timeout error, got '%v'", resp.Err)
	}
	if resp.Err.Error() != "request timed out" {
		t.Fatalf("expect display text 'request timed out', got '%s'", resp.Err.Error())
	}
}

func TestRateLimit(t *testing.T) {
	// rate=1 per second, burst=2: two pass, the third is refused
	handler := RateLimitMiddleware(1, 2)(echoHandler)
	call := message.NewCall(message.MethodRead, "sendShortMessage", "a1", "hello")

	for i := 0; i < 2; i++ {
		resp := handler(context.Background(), call)
		if resp.Err != nil {
			t.Fatalf("request %d should pass, got error: %v", i, resp.Err)
		}
	}

	resp := handler(context.Background(), call)
	if !errors.Is(resp.Err, smserrors.ErrRateLimited) {
		t.Fatalf("request 3 should be rate limited, got: '%v'", resp.Err)
	}
}

func TestRateLimitOnlyNamedOperations(t *testing.T) {
	handler := RateLimitMiddleware(1, 1, "sendShortMessage")(echoHandler)
	fetch := message.NewCall(message.MethodRead, "getShortMessagesAsString")

	// fetches are never throttled
	for i := 0; i < 5; i++ {
		if resp := handler(context.Background(), fetch); resp.Err != nil {
			t.Fatalf("fetch %d should pass, got %v", i, resp.Err)
		}
	}
}

func TestChain(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, call *message.Call) *message.Response {
				order = append(order, name)
				return next(ctx, call)
			}
		}
	}

	chained := Chain(mark("a"), mark("b"), TimeOutMiddleware(500*time.Millisecond))
	resp := chained(echoHandler)(context.Background(), message.NewCall(message.MethodRead, "getShortMessagesAsString"))

	if resp == nil || resp.Err != nil {
		t.Fatalf("expect success, got %+v", resp)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expect order [a b], got %v", order)
	}
}
