package config

import (
	"os"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/ryanmalley101/pykada/apierror"
)

// EnvAPIKey is the environment variable holding the Verkada API key.
const EnvAPIKey = "VERKADA_API_KEY"

// Options is the configuration surface for constructing a client. The zero
// value resolves the key from the environment and keeps every default.
type Options struct {
	// APIKey overrides environment resolution when non-empty.
	APIKey string

	// Timeout bounds each HTTP attempt. Zero keeps the default (60s).
	Timeout time.Duration

	// MaxRetries is the retry ceiling for transient failures. Nil keeps
	// the default (3); an explicit 0 disables retries.
	MaxRetries *int

	// BackoffFactor is the exponential backoff multiplier in seconds.
	// Zero keeps the default (2.0).
	BackoffFactor float64

	// RetryDelay is a fixed floor added between retry attempts.
	RetryDelay time.Duration
}

// Validate checks option ranges before they reach the client.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.MaxRetries, validation.Min(0)),
		validation.Field(&o.BackoffFactor, validation.Min(0.0)),
		validation.Field(&o.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&o.RetryDelay, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return apierror.NewConfiguration("invalid client options: " + err.Error())
	}
	return nil
}

// The .env file is read at most once per process, matching the original
// load-at-import behaviour without making the core depend on process state.
var loadDotEnv = sync.OnceFunc(func() {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()
})

// ResolveAPIKey returns the explicit key if set, otherwise the environment
// key (loading a local .env file first). A key that resolves to empty is a
// configuration error.
func ResolveAPIKey(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	loadDotEnv()
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	return "", apierror.NewConfiguration(
		"no API key: pass Options.APIKey or set " + EnvAPIKey + " (a local .env file is honoured)")
}
