// Package credential holds the identity/secret pair attached to every
// outgoing call. The secret never leaves the package except through Apply.
package credential

import (
	"fmt"
	"log/slog"
	"net/http"

	smserrors "sms-viewer/errors"
)

// Credential is immutable once built.
type Credential struct {
	identity string
	secret   string
}

// New returns ErrMissingCredential when identity is empty. An empty secret
// is allowed; some stores accept password-less agents.
func New(identity, secret string) (Credential, error) {
	if identity == "" {
		return Credential{}, fmt.Errorf("credential: identity is required: %w", smserrors.ErrMissingCredential)
	}
	return Credential{identity: identity, secret: secret}, nil
}

func (c Credential) Identity() string {
	return c.identity
}

func (c Credential) IsZero() bool {
	return c.identity == ""
}

// Apply authenticates req with HTTP basic auth.
func (c Credential) Apply(req *http.Request) {
	req.SetBasicAuth(c.identity, c.secret)
}

func (c Credential) String() string {
	return c.identity + ":***"
}

// LogValue keeps the secret out of structured logs.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}
