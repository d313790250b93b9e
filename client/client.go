// Package client is the request client of the viewer: it turns a named
// operation plus path parameters into an authenticated call, runs it through
// the middleware chain and the transport off the event thread, and hands the
// outcome back on the event thread.
package client

import (
	"context"
	"fmt"
	"log/slog"

	smserrors "sms-viewer/errors"
	"sms-viewer/eventloop"
	"sms-viewer/message"
	"sms-viewer/middleware"
	"sms-viewer/transport"
)

type Client struct {
	transport  transport.Transport
	dispatcher eventloop.Dispatcher
	handler    middleware.HandlerFunc // middleware(...(c.send))
	log        *slog.Logger
}

// NewClient builds the middleware chain once; middlewares run in the order
// given, outermost first.
func NewClient(t transport.Transport, dispatcher eventloop.Dispatcher, log *slog.Logger, middlewares ...middleware.Middleware) *Client {
	c := &Client{
		transport:  t,
		dispatcher: dispatcher,
		log:        log,
	}
	c.handler = middleware.Chain(middlewares...)(c.send)
	return c
}

// Call dispatches asynchronously and returns at once. Exactly one of
// onSuccess / onFailure later runs on the dispatcher.
func (c *Client) Call(method message.Method, operation string, params []string, onSuccess func(payload string), onFailure func(errPayload string)) {
	c.Go(context.Background(), method, operation, params...).Then(onSuccess, onFailure)
}

// Go starts the call and returns its Future.
func (c *Client) Go(ctx context.Context, method message.Method, operation string, params ...string) *Future {
	call := message.NewCall(method, operation, params...)
	future := newFuture(c.dispatcher)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("call panicked", "operation", operation, "panic", r)
				future.complete(&message.Response{Err: smserrors.Wrap(operation, fmt.Errorf("internal error: %v", r))})
			}
		}()
		future.complete(c.handler(ctx, call))
	}()

	return future
}

// send is the innermost handler: hand the call to the transport and wait
// for its single response.
func (c *Client) send(ctx context.Context, call *message.Call) *message.Response {
	seq, ch, err := c.transport.Send(ctx, call)
	if err != nil {
		return &message.Response{Err: smserrors.Wrap(call.Operation, err)}
	}

	select {
	case resp := <-ch:
		return resp
	case <-ctx.Done():
		return &message.Response{Seq: seq, Err: smserrors.Wrap(call.Operation, ctx.Err())}
	}
}
