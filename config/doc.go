// Package config resolves pykada client configuration.
//
// The API key is taken from, in order: an explicit Options value, the
// VERKADA_API_KEY environment variable, or a local .env file (typically
// untracked) loaded on first resolution. A missing key is a configuration
// error at load time, not at first use.
package config
