// Package pykada is a Go client for the Verkada Command public API.
//
// The package ties the pieces together: a tokens.Manager that trades the
// long-lived API key for short-lived bearer tokens, a requests.Client that
// executes calls with retry and automatic token attachment, and one thin
// wrapper client per product area (cameras, access control, sensors,
// alarms, Helix).
//
// # Quick Start
//
//	client, err := pykada.NewFromEnv() // reads VERKADA_API_KEY, honours .env
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cams, err := client.Cameras.ListAllCameras(ctx)
//
// One Client holds one credential; do not share a Client across unrelated
// credentials. All of it is safe for concurrent use.
package pykada

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/ryanmalley101/pykada/access"
	"github.com/ryanmalley101/pykada/alarms"
	"github.com/ryanmalley101/pykada/cameras"
	"github.com/ryanmalley101/pykada/config"
	"github.com/ryanmalley101/pykada/helix"
	"github.com/ryanmalley101/pykada/requests"
	"github.com/ryanmalley101/pykada/sensors"
	"github.com/ryanmalley101/pykada/tokens"
)

// Client is the aggregate entry point. All product clients share one token
// manager and one request executor.
type Client struct {
	Cameras *cameras.Client
	Access  *access.Client
	Sensors *sensors.Client
	Alarms  *alarms.Client
	Helix   *helix.Client

	tokenManager     *tokens.Manager
	streamingManager *tokens.Manager
	exec             *requests.Client
}

type settings struct {
	httpClient *http.Client
	logger     hclog.Logger
	policy     *requests.RetryPolicy
	tokenOpts  []tokens.Option
}

// Option is a functional option for configuring a Client.
type Option func(*settings)

// WithHTTPClient sets the HTTP client used for both token fetches and
// resource calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) { s.httpClient = client }
}

// WithLogger sets the logger shared by the token manager and the executor.
func WithLogger(logger hclog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy requests.RetryPolicy) Option {
	return func(s *settings) { s.policy = &policy }
}

// WithTokenOptions forwards options to the underlying token managers, for
// regional endpoints and expiry tuning.
func WithTokenOptions(opts ...tokens.Option) Option {
	return func(s *settings) { s.tokenOpts = append(s.tokenOpts, opts...) }
}

// New creates a client for an explicit API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return build(apiKey, s)
}

// NewFromEnv creates a client whose API key is resolved from the
// environment (VERKADA_API_KEY, with a local .env file honoured). This is
// the zero-configuration path for scripts; the core packages themselves
// never read process state.
func NewFromEnv(opts ...Option) (*Client, error) {
	key, err := config.ResolveAPIKey("")
	if err != nil {
		return nil, err
	}
	return New(key, opts...)
}

// NewWithConfig creates a client from a full configuration record,
// resolving the key from the environment when cfg.APIKey is empty.
func NewWithConfig(cfg config.Options, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := config.ResolveAPIKey(cfg.APIKey)
	if err != nil {
		return nil, err
	}

	policy := requests.DefaultRetryPolicy()
	if cfg.Timeout > 0 {
		policy.Timeout = cfg.Timeout
	}
	if cfg.MaxRetries != nil {
		policy.MaxRetries = *cfg.MaxRetries
	}
	if cfg.BackoffFactor > 0 {
		policy.BackoffFactor = cfg.BackoffFactor
	}
	if cfg.RetryDelay > 0 {
		policy.RetryDelay = cfg.RetryDelay
	}

	opts = append([]Option{WithRetryPolicy(policy)}, opts...)
	return New(key, opts...)
}

func build(apiKey string, s settings) (*Client, error) {
	tokenOpts := s.tokenOpts
	if s.logger != nil {
		tokenOpts = append(tokenOpts, tokens.WithLogger(s.logger))
	}
	if s.httpClient != nil {
		tokenOpts = append(tokenOpts, tokens.WithHTTPClient(s.httpClient))
	}

	tm, err := tokens.NewManager(apiKey, tokenOpts...)
	if err != nil {
		return nil, err
	}
	stm, err := tokens.NewStreamingManager(apiKey, tokenOpts...)
	if err != nil {
		return nil, err
	}

	var clientOpts []requests.ClientOption
	if s.logger != nil {
		clientOpts = append(clientOpts, requests.WithLogger(s.logger))
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, requests.WithHTTPClient(s.httpClient))
	}
	if s.policy != nil {
		clientOpts = append(clientOpts, requests.WithRetryPolicy(*s.policy))
	}

	exec := requests.NewClient(tm, clientOpts...)

	return &Client{
		Cameras:          cameras.NewClient(exec),
		Access:           access.NewClient(exec),
		Sensors:          sensors.NewClient(exec),
		Alarms:           alarms.NewClient(exec),
		Helix:            helix.NewClient(exec),
		tokenManager:     tm,
		streamingManager: stm,
		exec:             exec,
	}, nil
}

// Requests exposes the underlying executor for endpoints this package has no
// wrapper for yet.
func (c *Client) Requests() *requests.Client {
	return c.exec
}

// Token returns a currently valid API token.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokenManager.Token(ctx)
}

// StreamingToken returns a currently valid streaming-footage JWT.
func (c *Client) StreamingToken(ctx context.Context) (string, error) {
	return c.streamingManager.Token(ctx)
}

// HTTPClient returns a plain *http.Client that stamps the current token on
// every request, for callers that want to talk to the API without the
// executor's retry machinery.
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{Transport: requests.NewAuthTransport(c.tokenManager, nil)}
}
