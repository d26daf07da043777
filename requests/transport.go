package requests

import (
	"fmt"
	"net/http"

	"github.com/ryanmalley101/pykada/tokens"
)

// AuthTransport is an http.RoundTripper that stamps the manager's current
// bearer token onto outgoing requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and is the
// escape hatch for callers that want a plain *http.Client against the Command
// API without the Client retry machinery. Token refresh still collapses
// across concurrent requests because it goes through the shared manager.
type AuthTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// TokenManager provides the bearer tokens.
	TokenManager *tokens.Manager
}

// RoundTrip implements http.RoundTripper. It fetches a valid token and sets
// it as the x-verkada-auth header before delegating to the base transport.
// The token fetch respects the request context's cancellation and deadline.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.TokenManager == nil {
		return nil, fmt.Errorf("requests: TokenManager is nil")
	}

	token, err := t.TokenManager.Token(req.Context())
	if err != nil {
		return nil, err
	}

	// Clone the request to avoid modifying the original.
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set(AuthHeader, token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewAuthTransport creates an AuthTransport with the given token manager.
// The base transport defaults to http.DefaultTransport if not specified.
func NewAuthTransport(tm *tokens.Manager, base http.RoundTripper) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &AuthTransport{
		Base:         base,
		TokenManager: tm,
	}
}
