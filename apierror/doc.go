// Package apierror defines the error taxonomy shared by every pykada package.
//
// All failures surface as a single *Error type tagged with a Category:
//
//   - CategoryConfiguration: no resolvable credential or invalid client options;
//     raised at construction time and never retried.
//   - CategoryAuthentication: the token fetch itself failed (bad credential,
//     unreachable auth endpoint, non-2xx token response).
//   - CategoryRequest: a resource endpoint call exhausted its retries or
//     received a non-retryable client error.
//
// Errors carry the endpoint, HTTP status, and the remote error body so that a
// failure can be diagnosed without re-running with verbose logging. The
// wrapped cause is preserved and reachable through errors.Unwrap.
package apierror
