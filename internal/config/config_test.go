package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/taletrail/internal/client/api"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseClient_Defaults(t *testing.T) {
	opts, err := ParseClient(nil)
	require.NoError(t, err)

	assert.Equal(t, api.DefaultBaseURL, opts.BaseURL)
	assert.Equal(t, "file", opts.Store)
	assert.Equal(t, "session.json", opts.SessionFile)
	assert.Equal(t, time.Duration(0), opts.Timeout)
	assert.Equal(t, "error", opts.LogLevel)
	assert.False(t, opts.Version)
	assert.Empty(t, opts.Args)
}

func TestParseClient_FlagsAndArgs(t *testing.T) {
	opts, err := ParseClient([]string{
		"-url", "http://localhost:8080/api",
		"-store", "memory",
		"-timeout", "5s",
		"books", "the hobbit",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", opts.BaseURL)
	assert.Equal(t, "memory", opts.Store)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, []string{"books", "the hobbit"}, opts.Args)
}

func TestParseClient_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"base_url": "http://file/api",
		"store": "redis",
		"redis_url": "redis://file:6379/0",
		"timeout": "10s",
		"log_level": "debug"
	}`)

	t.Run("file over defaults", func(t *testing.T) {
		opts, err := ParseClient([]string{"-c", path})
		require.NoError(t, err)
		assert.Equal(t, "http://file/api", opts.BaseURL)
		assert.Equal(t, "redis", opts.Store)
		assert.Equal(t, "redis://file:6379/0", opts.RedisURL)
		assert.Equal(t, 10*time.Second, opts.Timeout)
		assert.Equal(t, "debug", opts.LogLevel)
	})

	t.Run("explicit flags over file", func(t *testing.T) {
		opts, err := ParseClient([]string{"-config", path, "-store", "memory", "-timeout", "1s"})
		require.NoError(t, err)
		assert.Equal(t, "memory", opts.Store)
		assert.Equal(t, time.Second, opts.Timeout)
		assert.Equal(t, "http://file/api", opts.BaseURL)
	})

	t.Run("environment over everything", func(t *testing.T) {
		t.Setenv("TALETRAIL_BASE_URL", "http://env/api")
		t.Setenv("TALETRAIL_TIMEOUT", "3s")
		opts, err := ParseClient([]string{"-config", path, "-url", "http://flag/api"})
		require.NoError(t, err)
		assert.Equal(t, "http://env/api", opts.BaseURL)
		assert.Equal(t, 3*time.Second, opts.Timeout)
	})

	t.Run("CONFIG selects the file", func(t *testing.T) {
		t.Setenv("CONFIG", path)
		opts, err := ParseClient(nil)
		require.NoError(t, err)
		assert.Equal(t, "redis", opts.Store)
	})
}

func TestParseClient_MissingConfigFileIsIgnored(t *testing.T) {
	opts, err := ParseClient([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, opts.BaseURL)
}

func TestParseClient_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{name: "unknown flag", args: func(t *testing.T) []string { return []string{"-bogus"} }},
		{name: "bad duration flag", args: func(t *testing.T) []string { return []string{"-timeout", "soon"} }},
		{name: "malformed file", args: func(t *testing.T) []string { return []string{"-c", writeConfig(t, `{`)} }},
		{name: "bad duration in file", args: func(t *testing.T) []string { return []string{"-c", writeConfig(t, `{"timeout":"soon"}`)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClient(tt.args(t))
			assert.Error(t, err)
		})
	}
}

func TestParseClient_BadEnvironment(t *testing.T) {
	t.Setenv("TALETRAIL_TIMEOUT", "soon")
	_, err := ParseClient(nil)
	assert.Error(t, err)
}

func TestParseServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := ParseServer([]string{"-c", filepath.Join(t.TempDir(), "absent.json")})
		require.NoError(t, err)
		assert.Equal(t, "localhost:8080", opts.Addr)
		assert.Equal(t, 24*time.Hour, opts.TokenTTL)
		assert.Equal(t, "info", opts.LogLevel)
		assert.Empty(t, opts.DatabaseDSN)
	})

	t.Run("file flags and environment", func(t *testing.T) {
		path := writeConfig(t, `{"server_address":":9000","database_dsn":"postgres://file","token_ttl":"1h","jwt_secret":"file-secret"}`)
		t.Setenv("JWT_SECRET", "env-secret")
		opts, err := ParseServer([]string{"-c", path, "-d", "postgres://flag"})
		require.NoError(t, err)
		assert.Equal(t, ":9000", opts.Addr)
		assert.Equal(t, "postgres://flag", opts.DatabaseDSN)
		assert.Equal(t, time.Hour, opts.TokenTTL)
		assert.Equal(t, "env-secret", opts.JWTSecret)
	})

	t.Run("SERVER_ADDRESS", func(t *testing.T) {
		t.Setenv("SERVER_ADDRESS", "0.0.0.0:8443")
		opts, err := ParseServer([]string{"-a", ":1", "-c", ""})
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8443", opts.Addr)
	})
}
