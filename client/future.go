package client

import (
	"context"
	"sync"

	smserrors "sms-viewer/errors"
	"sms-viewer/eventloop"
	"sms-viewer/message"
)

// Future is the eventual outcome of one call. It completes exactly once.
type Future struct {
	dispatcher eventloop.Dispatcher

	mu            sync.Mutex
	resp          *message.Response
	continuations []continuation
	done          chan struct{}
}

type continuation struct {
	onSuccess func(payload string)
	onFailure func(errPayload string)
}

func newFuture(dispatcher eventloop.Dispatcher) *Future {
	return &Future{dispatcher: dispatcher, done: make(chan struct{})}
}

// Done is closed once the outcome is known.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the outcome is known or ctx ends.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Result returns the outcome; it blocks until the call completes.
func (f *Future) Result() (string, error) {
	<-f.done
	if f.resp.Err != nil {
		return "", f.resp.Err
	}
	return f.resp.Payload, nil
}

// Then registers a continuation pair. Exactly one of the two runs, on the
// dispatcher, with the payload or the error text. Registering after
// completion schedules it right away.
func (f *Future) Then(onSuccess func(payload string), onFailure func(errPayload string)) {
	c := continuation{onSuccess: onSuccess, onFailure: onFailure}

	f.mu.Lock()
	if f.resp == nil {
		f.continuations = append(f.continuations, c)
		f.mu.Unlock()
		return
	}
	resp := f.resp
	f.mu.Unlock()

	f.deliver(resp, c)
}

func (f *Future) complete(resp *message.Response) {
	if resp == nil {
		resp = &message.Response{Err: smserrors.ErrEmptyResponse}
	}

	f.mu.Lock()
	if f.resp != nil {
		f.mu.Unlock()
		return
	}
	f.resp = resp
	pending := f.continuations
	f.continuations = nil
	close(f.done)
	f.mu.Unlock()

	for _, c := range pending {
		f.deliver(resp, c)
	}
}

func (f *Future) deliver(resp *message.Response, c continuation) {
	f.dispatcher.Post(func() {
		if resp.Err != nil {
			if c.onFailure != nil {
				c.onFailure(resp.Err.Error())
			}
			return
		}
		if c.onSuccess != nil {
			c.onSuccess(resp.Payload)
		}
	})
}
