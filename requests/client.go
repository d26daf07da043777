package requests

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ryanmalley101/pykada/apierror"
	"github.com/ryanmalley101/pykada/tokens"
)

// AuthHeader is the header carrying the short-lived bearer token on every
// Command API call. Callers cannot override it; the executor always writes
// the manager's current token.
const AuthHeader = "x-verkada-auth"

const maxErrorBodyBytes = 2048

// RetryPolicy configures how a Client handles transient failures. It is
// immutable once the Client is constructed.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	// A call that keeps failing transiently is attempted MaxRetries+1 times.
	MaxRetries int

	// BackoffFactor scales the exponential backoff: the sleep before retry
	// n is RetryDelay + BackoffFactor * 2^n seconds.
	BackoffFactor float64

	// RetryDelay is a fixed floor added to every backoff sleep.
	RetryDelay time.Duration

	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// DefaultRetryPolicy mirrors the retry configuration the Command API
// documentation recommends.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		RetryDelay:    0,
		Timeout:       60 * time.Second,
	}
}

// newBackOff builds the per-call backoff schedule. RandomizationFactor is
// zero so the sleep sequence is exactly BackoffFactor * 2^n.
func (p RetryPolicy) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(p.BackoffFactor * float64(time.Second))
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 10 * time.Minute
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Client executes authenticated HTTP calls with retry, backoff, and timeout
// handling. It is safe for concurrent use.
type Client struct {
	tokenManager *tokens.Manager
	httpClient   *http.Client
	policy       RetryPolicy
	logger       hclog.Logger
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for resource calls. Its own
// Timeout is left untouched; per-attempt timeouts come from the RetryPolicy.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithLogger sets the logger for request lifecycle events.
func WithLogger(logger hclog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a request executor bound to the given token manager.
func NewClient(tm *tokens.Manager, opts ...ClientOption) *Client {
	c := &Client{
		tokenManager: tm,
		httpClient:   defaultHTTPClient(),
		policy:       DefaultRetryPolicy(),
		logger:       hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// defaultHTTPClient clones the default transport with TLS 1.2 as the floor.
// No client-level timeout: each attempt is bounded by the retry policy.
func defaultHTTPClient() *http.Client {
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		transport := base.Clone()
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		return &http.Client{Transport: transport}
	}
	return &http.Client{}
}

// Request describes one logical call. URL must be an absolute endpoint on
// the Command API host; Query and Header may be nil; Body, when non-nil, is
// marshalled to JSON.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Body   any
	Header http.Header
}

// Get issues a GET and decodes the JSON response into out (which may be nil).
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: endpoint, Query: query}, out)
}

// GetRaw issues a GET and returns the raw response body. Used for non-JSON
// payloads such as thumbnail and license plate images.
func (c *Client) GetRaw(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.do(ctx, &Request{Method: http.MethodGet, URL: endpoint, Query: query})
}

// Post issues a POST with an optional JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, query url.Values, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, URL: endpoint, Query: query, Body: body}, out)
}

// Put issues a PUT with an optional JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, query url.Values, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, URL: endpoint, Query: query, Body: body}, out)
}

// Patch issues a PATCH with an optional JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, endpoint string, query url.Values, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPatch, URL: endpoint, Query: query, Body: body}, out)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, URL: endpoint, Query: query}, out)
}

// Do executes one logical call and decodes the JSON response body into out.
// A nil out discards the body; an empty 2xx body with non-nil out is not an
// error.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apierror.NewRequest(req.URL, http.StatusOK, "response body is not valid JSON", err)
	}
	return nil
}

// do runs the retry state machine for one logical call and returns the final
// 2xx response body.
func (c *Client) do(ctx context.Context, req *Request) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Method == "" || req.URL == "" {
		return nil, apierror.NewRequest(req.URL, 0, "request method and URL are required", nil)
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, apierror.NewRequest(req.URL, 0, "marshalling request body failed", err)
		}
	}

	requestID := uuid.NewString()
	bo := c.policy.newBackOff()

	var (
		authRetried bool
		lastErr     error
	)

	for attempt := 0; ; {
		token, err := c.tokenManager.Token(ctx)
		if err != nil {
			// Authentication failures from the manager are surfaced
			// as-is; retrying the resource call cannot fix them.
			return nil, err
		}

		body, status, err := c.attempt(ctx, req, payload, token)

		switch {
		case err == nil && status >= 200 && status < 300:
			return body, nil

		case err == nil && (status == http.StatusUnauthorized || status == http.StatusForbidden):
			lastErr = apierror.NewRequest(req.URL, status, string(body), nil)
			if authRetried {
				return nil, lastErr
			}
			// Replay once with a fresh token. This does not consume a
			// normal retry attempt.
			authRetried = true
			c.logger.Debug("auth rejected, refreshing token and replaying",
				"request_id", requestID, "endpoint", req.URL, "status", status)
			if _, err := c.tokenManager.Refresh(ctx, token); err != nil {
				return nil, err
			}
			continue

		case err == nil && !retryableStatus(status):
			return nil, apierror.NewRequest(req.URL, status, string(body), nil)

		default:
			// Transient: connection error, timeout, 429, or 5xx.
			if err != nil {
				lastErr = apierror.NewRequest(req.URL, 0, "request failed", err)
			} else {
				lastErr = apierror.NewRequest(req.URL, status, string(body), nil)
			}
		}

		if attempt >= c.policy.MaxRetries {
			return nil, lastErr
		}
		attempt++

		delay := c.policy.RetryDelay + bo.NextBackOff()
		c.logger.Debug("retrying after transient failure",
			"request_id", requestID, "endpoint", req.URL,
			"attempt", attempt, "delay", delay, "error", lastErr)
		if err := sleepContext(ctx, delay); err != nil {
			return nil, apierror.NewRequest(req.URL, 0, "cancelled while waiting to retry", errors.Join(err, lastErr))
		}
	}
}

// attempt issues a single HTTP request bounded by the per-attempt timeout.
// The returned body is capped for non-2xx responses so huge error pages do
// not balloon error messages.
func (c *Client) attempt(ctx context.Context, req *Request, payload []byte, token string) ([]byte, int, error) {
	attemptCtx := ctx
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}

	httpReq.Header.Set("accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("content-type", "application/json")
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	// The auth header always carries the manager's current token, even if
	// the caller supplied one.
	httpReq.Header.Set(AuthHeader, token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
		}
		return body, resp.StatusCode, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return body, resp.StatusCode, nil
}

// retryableStatus reports whether a response status is worth retrying:
// 429 and the 5xx family, matching the service's documented transient codes.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
