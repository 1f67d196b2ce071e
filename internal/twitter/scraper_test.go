package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	clear := func() {
		t.Setenv("TWITTER_USERNAME", "")
		t.Setenv("TWITTER_PASSWORD", "")
		t.Setenv("TWITTER_EMAIL", "")
		t.Setenv("TWITTER_COOKIES", "")
	}

	clear()
	credentials, err := CredentialsFromEnv()
	require.NoError(t, err)
	assert.Nil(t, credentials)

	// Cookies alone are a usable session.
	clear()
	t.Setenv("TWITTER_COOKIES", "auth_token=tok; ct0=abc")
	credentials, err = CredentialsFromEnv()
	require.NoError(t, err)
	require.NotNil(t, credentials)
	assert.Equal(t, "auth_token=tok; ct0=abc", credentials.Cookies)

	// A username without password and email is not configured.
	clear()
	t.Setenv("TWITTER_USERNAME", "jane")
	credentials, err = CredentialsFromEnv()
	require.NoError(t, err)
	assert.Nil(t, credentials)

	clear()
	t.Setenv("TWITTER_USERNAME", "jane")
	t.Setenv("TWITTER_PASSWORD", "secret")
	t.Setenv("TWITTER_EMAIL", "jane@example.com")
	credentials, err = CredentialsFromEnv()
	require.NoError(t, err)
	require.NotNil(t, credentials)
	assert.Equal(t, "jane", credentials.Username)
}
