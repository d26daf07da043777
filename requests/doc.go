// Package requests executes authenticated calls against the Verkada Command
// API on behalf of the resource wrapper packages.
//
// A Client hides three concerns from its callers: attaching a current bearer
// token from tokens.Manager to every request, retrying transient failures
// (connection errors, timeouts, 429 and 5xx responses) with exponential
// backoff, and recovering from a rejected token by forcing exactly one
// refresh-and-replay per logical call. Callers see either the decoded JSON
// response or a typed *apierror.Error.
//
// # Quick Start
//
//	tm, _ := tokens.NewManager(apiKey)
//	c := requests.NewClient(tm)
//
//	var out struct {
//	    Cameras []map[string]any `json:"cameras"`
//	}
//	err := c.Get(ctx, endpoints.CameraData, nil, &out)
//
// For callers that want a plain *http.Client with token injection and no
// retry policy, AuthTransport wraps any RoundTripper.
//
// All methods are safe for concurrent use.
package requests
