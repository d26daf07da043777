package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/ryanmalley101/pykada/apierror"
	"github.com/ryanmalley101/pykada/endpoints"
)

const (
	// DefaultLifetime is the documented validity window of a Command API
	// token. The service does not return an expiry, so it is computed from
	// the fetch time.
	DefaultLifetime = 30 * time.Minute

	// DefaultExpiryLeeway is how long before nominal expiry a token is
	// treated as stale, absorbing in-flight latency between the validity
	// check and the request that carries the token.
	DefaultExpiryLeeway = 5 * time.Minute

	defaultFetchTimeout = 30 * time.Second
)

// Manager trades a Verkada API key for short-lived bearer tokens and caches
// the current one. It is safe for concurrent use.
type Manager struct {
	apiKey      string
	tokenURL    string
	method      string
	responseKey string
	lifetime    time.Duration
	leeway      time.Duration
	httpClient  *http.Client
	logger      hclog.Logger
	now         func() time.Time

	mu    sync.RWMutex
	token *oauth2.Token
}

// Option is a functional option for configuring a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for token lifecycle events. Token values
// and the API key are never logged.
func WithLogger(logger hclog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used for token fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// WithTokenURL overrides the token endpoint. Intended for regional hosts and
// tests.
func WithTokenURL(url string) Option {
	return func(m *Manager) {
		if url != "" {
			m.tokenURL = url
		}
	}
}

// WithLifetime overrides the assumed token validity window.
func WithLifetime(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.lifetime = d
		}
	}
}

// WithExpiryLeeway overrides the safety margin subtracted from a token's
// nominal expiry.
func WithExpiryLeeway(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.leeway = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a token manager for the standard Command API token.
// The API key must be non-empty; a missing key is a configuration error
// surfaced here rather than at first use.
func NewManager(apiKey string, opts ...Option) (*Manager, error) {
	return newManager(apiKey, endpoints.GetToken, http.MethodPost, "token", opts...)
}

// NewStreamingManager creates a token manager for the streaming-footage
// token. The streaming endpoint issues JWTs via GET; the token expiry is
// read from the JWT exp claim when present.
func NewStreamingManager(apiKey string, opts ...Option) (*Manager, error) {
	return newManager(apiKey, endpoints.StreamingToken, http.MethodGet, "jwt", opts...)
}

func newManager(apiKey, tokenURL, method, responseKey string, opts ...Option) (*Manager, error) {
	if apiKey == "" {
		return nil, apierror.NewConfiguration("missing API key: pass one explicitly or set " +
			"VERKADA_API_KEY in the environment")
	}

	m := &Manager{
		apiKey:      apiKey,
		tokenURL:    tokenURL,
		method:      method,
		responseKey: responseKey,
		lifetime:    DefaultLifetime,
		leeway:      DefaultExpiryLeeway,
		httpClient:  &http.Client{Timeout: defaultFetchTimeout},
		logger:      hclog.NewNullLogger(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Token returns a currently valid bearer token, fetching a new one only when
// none is cached or the cached one is within the expiry leeway. Concurrent
// callers against a stale token perform exactly one fetch; the rest wait on
// the mutex and receive the same result. A failed fetch leaves any previously
// cached token in place.
func (m *Manager) Token(ctx context.Context) (string, error) {
	// Fast path: valid cached token under the read lock.
	m.mu.RLock()
	if m.tokenValid() {
		tok := m.token.AccessToken
		m.mu.RUnlock()
		return tok, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check: another goroutine may have refreshed while we waited.
	if m.tokenValid() {
		return m.token.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.logger.Debug("obtained new api token", "endpoint", m.tokenURL, "expires", token.Expiry)
	return token.AccessToken, nil
}

// Refresh unconditionally discards the cached token and fetches a new one.
// It is used after a resource call came back 401/403 with a token the cache
// believed valid (clock skew, server-side early invalidation).
//
// stale is the token string the failed call carried. If the cached token no
// longer matches it, a concurrent caller already refreshed and the current
// token is returned without another fetch, so N calls failing on the same
// stale token cost one fetch.
func (m *Manager) Refresh(ctx context.Context, stale string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.token.AccessToken != stale && m.tokenValid() {
		return m.token.AccessToken, nil
	}

	// The server rejected this token; it is gone regardless of the fetch
	// outcome.
	m.token = nil

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.logger.Debug("force-refreshed api token", "endpoint", m.tokenURL, "expires", token.Expiry)
	return token.AccessToken, nil
}

// tokenValid reports whether the cached token is still usable within the
// expiry leeway. Callers must hold at least the read lock.
func (m *Manager) tokenValid() bool {
	if m.token == nil || m.token.AccessToken == "" {
		return false
	}
	if m.token.Expiry.IsZero() {
		return false
	}
	return m.token.Expiry.Sub(m.now()) > m.leeway
}

// fetch performs one blocking token fetch against the token endpoint.
// Callers must hold the write lock.
func (m *Manager) fetch(ctx context.Context) (*oauth2.Token, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, m.method, m.tokenURL, nil)
	if err != nil {
		return nil, apierror.NewAuthentication(m.tokenURL, 0, "building token request failed", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, apierror.NewAuthentication(m.tokenURL, 0, "token endpoint unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apierror.NewAuthentication(m.tokenURL, resp.StatusCode, "reading token response failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierror.NewAuthentication(m.tokenURL, resp.StatusCode, string(body), nil)
	}

	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.NewAuthentication(m.tokenURL, resp.StatusCode, "token response is not valid JSON", err)
	}

	value, ok := payload[m.responseKey]
	if !ok || value == "" {
		return nil, apierror.NewAuthentication(m.tokenURL, resp.StatusCode,
			fmt.Sprintf("token response is missing %q", m.responseKey), nil)
	}

	return &oauth2.Token{
		AccessToken: value,
		TokenType:   "Bearer",
		Expiry:      m.expiryFor(value),
	}, nil
}

// expiryFor computes the expiry for a freshly fetched token. Streaming tokens
// are JWTs carrying their own exp claim; everything else gets the configured
// fixed lifetime.
func (m *Manager) expiryFor(token string) time.Time {
	if m.responseKey == "jwt" {
		if exp, ok := jwtExpiry(token); ok {
			return exp
		}
	}
	return m.now().Add(m.lifetime)
}

// jwtExpiry extracts the exp claim of a JWT without verifying its signature.
// The manager only carries the token; validation is the server's job.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
