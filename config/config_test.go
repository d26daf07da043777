package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanmalley101/pykada/apierror"
)

func TestResolveAPIKeyPrefersExplicit(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	key, err := ResolveAPIKey("explicit-key")
	require.NoError(t, err)
	assert.Equal(t, "explicit-key", key)
}

func TestResolveAPIKeyFallsBackToEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	key, err := ResolveAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestResolveAPIKeyMissingIsConfigurationError(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := ResolveAPIKey("")
	require.Error(t, err)
	assert.True(t, apierror.IsConfiguration(err))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())

	retries := 5
	assert.NoError(t, Options{
		APIKey:        "k",
		Timeout:       time.Minute,
		MaxRetries:    &retries,
		BackoffFactor: 1.5,
		RetryDelay:    time.Second,
	}.Validate())

	negative := -1
	err := Options{MaxRetries: &negative}.Validate()
	require.Error(t, err)
	assert.True(t, apierror.IsConfiguration(err))

	err = Options{BackoffFactor: -0.5}.Validate()
	require.Error(t, err)
	assert.True(t, apierror.IsConfiguration(err))

	err = Options{Timeout: -time.Second}.Validate()
	require.Error(t, err)
	assert.True(t, apierror.IsConfiguration(err))
}
