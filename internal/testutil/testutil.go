package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// JSONResponse builds an in-memory response with the given status and body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// Step is one scripted exchange of a ScriptedTransport.
type Step struct {
	Status int
	Body   string
	// Err, when non-nil, simulates a connection-level failure; Status and
	// Body are ignored.
	Err error
}

// ScriptedTransport replays a fixed sequence of responses and records every
// request it sees. Once the script is exhausted, the last step repeats.
// It is safe for concurrent use.
type ScriptedTransport struct {
	mu       sync.Mutex
	steps    []Step
	pos      int
	requests []*http.Request
	delays   []time.Duration
	last     time.Time
}

// NewScriptedTransport builds a transport that replays steps in order.
func NewScriptedTransport(steps ...Step) *ScriptedTransport {
	return &ScriptedTransport{steps: steps}
}

// RoundTrip implements http.RoundTripper.
func (s *ScriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.last.IsZero() {
		s.delays = append(s.delays, now.Sub(s.last))
	}
	s.last = now
	s.requests = append(s.requests, req)

	if len(s.steps) == 0 {
		return JSONResponse(http.StatusOK, `{}`), nil
	}
	step := s.steps[s.pos]
	if s.pos < len(s.steps)-1 {
		s.pos++
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return JSONResponse(step.Status, step.Body), nil
}

// Calls returns how many requests the transport has served.
func (s *ScriptedTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the recorded requests.
func (s *ScriptedTransport) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Delays returns the wall-clock gaps recorded before each request after the
// first, for asserting backoff timing.
func (s *ScriptedTransport) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}

// Client wraps the transport in an *http.Client.
func (s *ScriptedTransport) Client() *http.Client {
	return &http.Client{Transport: s}
}

// TokenTransport fakes the token endpoint: every request is answered with a
// token named tok1, tok2, ... and counted. A non-zero FailStatus makes every
// response an error instead.
type TokenTransport struct {
	mu         sync.Mutex
	calls      int
	FailStatus int
	// ResponseKey is the JSON key carrying the token; defaults to "token".
	ResponseKey string
	// Tokens, when non-empty, overrides the generated token values; the
	// last entry repeats once exhausted.
	Tokens []string
}

// RoundTrip implements http.RoundTripper.
func (t *TokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++

	if t.FailStatus != 0 {
		return JSONResponse(t.FailStatus, `{"message":"api key rejected"}`), nil
	}

	key := t.ResponseKey
	if key == "" {
		key = "token"
	}
	value := fmt.Sprintf("tok%d", t.calls)
	if len(t.Tokens) > 0 {
		idx := t.calls - 1
		if idx >= len(t.Tokens) {
			idx = len(t.Tokens) - 1
		}
		value = t.Tokens[idx]
	}
	return JSONResponse(http.StatusOK, fmt.Sprintf(`{%q:%q}`, key, value)), nil
}

// Calls returns how many token fetches have been served.
func (t *TokenTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// Client wraps the transport in an *http.Client.
func (t *TokenTransport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Clock is a movable time source for token expiry tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time; pass it as the manager's clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MustHeader fails the test unless the request carries the header value.
func MustHeader(tb testing.TB, req *http.Request, key, want string) {
	tb.Helper()
	if got := req.Header.Get(key); got != want {
		tb.Fatalf("header %s = %q, want %q", key, got, want)
	}
}
