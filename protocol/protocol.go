// Package protocol fixes how a call is laid out on the wire for the short
// message store.
//
// The store exposes every operation as a path under one base address; call
// parameters become further path segments:
//
//	{base}/{operation}/{param0}/{param1}...
//
//	GET  {base}/getShortMessagesAsString          → full message log as text
//	GET  {base}/sendShortMessage/{agent}/{text}    → short status string
//
// Parameters are appended verbatim. Escaping them is the caller's job; the
// HTTP layer only percent-encodes what it must (spaces and the like).
package protocol

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	smserrors "sms-viewer/errors"
	"sms-viewer/message"
)

// Remote operation names.
const (
	OpGetMessages = "getShortMessagesAsString"
	OpSendMessage = "sendShortMessage"
)

// Endpoint is the immutable base address every call is built against.
type Endpoint struct {
	base string
}

// NewEndpoint validates base and strips trailing slashes so that target
// paths are built by plain concatenation.
func NewEndpoint(base string) (Endpoint, error) {
	if base == "" {
		return Endpoint{}, fmt.Errorf("protocol: base address is required: %w", smserrors.ErrMissingEndpoint)
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return Endpoint{}, fmt.Errorf("protocol: invalid base address %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("protocol: unsupported scheme %q in %q", parsed.Scheme, base)
	}
	if parsed.Host == "" {
		return Endpoint{}, fmt.Errorf("protocol: missing host in %q", base)
	}
	return Endpoint{base: strings.TrimRight(base, "/")}, nil
}

func (e Endpoint) BaseAddress() string {
	return e.base
}

func (e Endpoint) IsZero() bool {
	return e.base == ""
}

// Target returns base + "/" + operation + ("/" + param)*.
func (e Endpoint) Target(operation string, params ...string) string {
	var b strings.Builder
	b.WriteString(e.base)
	b.WriteByte('/')
	b.WriteString(operation)
	for _, param := range params {
		b.WriteByte('/')
		b.WriteString(param)
	}
	return b.String()
}

// HTTPMethod maps the abstract call method to its HTTP verb.
func HTTPMethod(m message.Method) string {
	if m == message.MethodWrite {
		return http.MethodPost
	}
	return http.MethodGet
}
