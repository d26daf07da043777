// Package tokens manages short-lived Verkada API bearer tokens.
//
// A Manager owns one long-lived API key and trades it for short-lived tokens
// at the Command token endpoint, caching each token until shortly before its
// expiry. Concurrent callers discovering a stale token collapse into a single
// fetch; readers of a valid token never block behind a refresh.
//
// # Quick Start
//
//	tm, err := tokens.NewManager(apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tok, err := tm.Token(ctx)
//
// The streaming-footage variant issues JWTs instead of opaque tokens; use
// NewStreamingManager for it. Both are safe for concurrent use.
package tokens
