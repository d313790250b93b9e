package protocol

import (
	"errors"
	"net/http"
	"testing"

	smserrors "sms-viewer/errors"
	"sms-viewer/message"
)

func TestTarget(t *testing.T) {
	endpoint, err := NewEndpoint("http://localhost:8080/sms/")
	if err != nil {
		t.Fatalf("NewEndpoint failed: %v", err)
	}

	cases := []struct {
		operation string
		params    []string
		expect    string
	}{
		{OpGetMessages, nil, "http://localhost:8080/sms/getShortMessagesAsString"},
		{OpSendMessage, []string{"a1", "hello"}, "http://localhost:8080/sms/sendShortMessage/a1/hello"},
		// verbatim: nothing is escaped or dropped here
		{OpSendMessage, []string{"", "two words"}, "http://localhost:8080/sms/sendShortMessage//two words"},
	}

	for _, tc := range cases {
		if got := endpoint.Target(tc.operation, tc.params...); got != tc.expect {
			t.Errorf("Target mismatch: got %s, want %s", got, tc.expect)
		}
	}
}

func TestNewEndpointInvalid(t *testing.T) {
	if _, err := NewEndpoint(""); !errors.Is(err, smserrors.ErrMissingEndpoint) {
		t.Fatalf("expect ErrMissingEndpoint, got %v", err)
	}
	if _, err := NewEndpoint("ftp://host/x"); err == nil {
		t.Fatal("expect error for unsupported scheme")
	}
	if _, err := NewEndpoint("http://"); err == nil {
		t.Fatal("expect error for missing host")
	}
}

func TestHTTPMethod(t *testing.T) {
	if HTTPMethod(message.MethodRead) != http.MethodGet {
		t.Errorf("read should map to GET")
	}
	if HTTPMethod(message.MethodWrite) != http.MethodPost {
		t.Errorf("write should map to POST")
	}
}
