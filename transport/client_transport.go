//go:generate go run go.uber.org/mock/mockgen -source=client_transport.go -destination=../mocks/mock_transport.go -package=mocks

// Package transport implements the HTTP side of the request client.
//
// Each Send gets a sequence number and a buffered response channel and runs its
// request on its own goroutine, so callers never block on the network and
// overlapping calls complete in whatever order the store answers them:
//
//	Send(seq=1) ──┐                       ┌──→ chan(seq=1)
//	Send(seq=2) ──┼──→ http.Client ──→ store ──┼──→ chan(seq=2)
//	Send(seq=3) ──┘                       └──→ chan(seq=3)
//
// Exactly one Response is written to each channel.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sms-viewer/codec"
	"sms-viewer/credential"
	smserrors "sms-viewer/errors"
	"sms-viewer/message"
	"sms-viewer/protocol"
)

// maxBodySize caps how much of a response is read into memory. A longer
// body fails the call; it is never cut short.
const maxBodySize = 4 << 20

// Transport dispatches a call and returns the channel its Response will
// arrive on.
type Transport interface {
	Send(ctx context.Context, call *message.Call) (uint64, <-chan *message.Response, error)
}

// Options tunes an HTTPTransport. Zero values pick defaults.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration // used only when HTTPClient is nil
	Logger     *slog.Logger
	// Codec decodes success bodies. The zero value (text) hands the body
	// over verbatim whatever its Content-Type.
	Codec      codec.CodecType
}

// HTTPTransport sends calls to one fixed Endpoint with one fixed Credential.
type HTTPTransport struct {
	endpoint   protocol.Endpoint
	credential credential.Credential
	httpClient *http.Client
	codec      codec.Codec
	log        *slog.Logger

	mu      sync.Mutex // guards closed and wg.Add against Close
	closed  bool
	seq     atomic.Uint64
	pending sync.Map // map[uint64]context.CancelFunc, one entry per in-flight call
	wg      sync.WaitGroup
}

// NewHTTPTransport refuses to build a transport without a credential, so no
// call can ever leave unauthenticated.
func NewHTTPTransport(endpoint protocol.Endpoint, cred credential.Credential, opts Options) (*HTTPTransport, error) {
	if cred.IsZero() {
		return nil, fmt.Errorf("transport: %w", smserrors.ErrMissingCredential)
	}
	if endpoint.IsZero() {
		return nil, fmt.Errorf("transport: %w", smserrors.ErrMissingEndpoint)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPTransport{
		endpoint:   endpoint,
		credential: cred,
		httpClient: httpClient,
		codec:      codec.GetCodec(opts.Codec),
		log:        logger,
	}, nil
}

// Send builds the request and starts it. A request that cannot even be
// built (a parameter that breaks URL parsing, for instance) is reported as an
// error here; everything after that arrives on the channel.
func (t *HTTPTransport) Send(ctx context.Context, call *message.Call) (uint64, <-chan *message.Response, error) {
	reqCtx, cancel := context.WithCancel(ctx)
	req, err := t.newRequest(reqCtx, call)
	if err != nil {
		cancel()
		return 0, nil, smserrors.Wrap(call.Operation, err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		cancel()
		return 0, nil, smserrors.Wrap(call.Operation, smserrors.ErrTransportClosed)
	}
	seq := t.seq.Add(1)
	t.pending.Store(seq, cancel)
	t.wg.Add(1)
	t.mu.Unlock()

	// Buffered so the request goroutine never blocks on a caller that gave up.
	respChan := make(chan *message.Response, 1)

	go func() {
		defer t.wg.Done()
		defer cancel()
		resp := t.roundTrip(seq, call, req)
		t.pending.Delete(seq)
		respChan <- resp
	}()

	return seq, respChan, nil
}

// Close aborts whatever is still in flight and waits for those goroutines to
// deliver their (failed) responses. Later Sends fail with ErrTransportClosed.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.pending.Range(func(key, value any) bool {
		value.(context.CancelFunc)()
		return true
	})
	t.wg.Wait()
	t.httpClient.CloseIdleConnections()
	return nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, call *message.Call) (*http.Request, error) {
	target := t.endpoint.Target(call.Operation, call.Params...)
	req, err := http.NewRequestWithContext(ctx, protocol.HTTPMethod(call.Method), target, nil)
	if err != nil {
		return nil, err
	}
	t.credential.Apply(req)
	req.Header.Set("Accept", "text/plain, application/json")
	if call.RequestID != "" {
		req.Header.Set("X-Request-Id", call.RequestID)
	}
	return req, nil
}

func (t *HTTPTransport) roundTrip(seq uint64, call *message.Call, req *http.Request) *message.Response {
	res, err := t.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			err = fmt.Errorf("%w: %w", smserrors.ErrTimeout, err)
		}
		return &message.Response{Seq: seq, Err: smserrors.Wrap(call.Operation, err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize+1))
	if err != nil {
		return &message.Response{Seq: seq, Err: smserrors.Wrap(call.Operation, err)}
	}
	if len(body) > maxBodySize {
		err := fmt.Errorf("%w: more than %d bytes", smserrors.ErrResponseTooLarge, maxBodySize)
		return &message.Response{Seq: seq, Err: smserrors.Wrap(call.Operation, err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		t.log.Debug("call refused",
			"operation", call.Operation,
			"seq", seq,
			"status", res.StatusCode,
		)
		return &message.Response{
			Seq: seq,
			Err: smserrors.NewStatusError(call.Operation, res.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	payload, err := t.codec.Decode(body)
	if err != nil {
		return &message.Response{Seq: seq, Err: smserrors.Wrap(call.Operation, err)}
	}
	return &message.Response{Seq: seq, Payload: payload}
}
