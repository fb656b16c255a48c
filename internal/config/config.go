// Package config provides the configuration of the TaleTrail client and the
// stub server. Values come from command-line flags, an optional JSON config
// file and environment variables.
//
// Precedence, lowest first: flag defaults, config file, explicitly set
// flags, environment.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/atinyakov/taletrail/internal/client/api"
)

// ClientOptions holds the configuration of the terminal client.
type ClientOptions struct {
	// BaseURL is the API root every endpoint path is appended to.
	BaseURL string `json:"base_url" env:"TALETRAIL_BASE_URL"`

	// Store selects where tokens are persisted: file, redis or memory.
	Store string `json:"store" env:"TALETRAIL_STORE"`

	// SessionFile is the token file used by the file store.
	SessionFile string `json:"session_file" env:"TALETRAIL_SESSION_FILE"`

	// RedisURL is used by the redis store.
	RedisURL string `json:"redis_url" env:"TALETRAIL_REDIS_URL"`

	// CAFile is an extra PEM CA to trust, e.g. the stub server's.
	CAFile string `json:"ca_file" env:"TALETRAIL_CA_FILE"`

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `json:"timeout" env:"TALETRAIL_TIMEOUT"`

	LogLevel string `json:"log_level" env:"TALETRAIL_LOG_LEVEL"`

	// Config is the path to the config file.
	Config string `json:"-" env:"CONFIG"`

	// Version asks for build information instead of running.
	Version bool `json:"-"`

	// Args are the positional arguments: a one-shot command, or none for
	// the interactive shell.
	Args []string `json:"-"`
}

// ServerOptions holds the configuration of the stub backend.
type ServerOptions struct {
	// Addr is the listening address (ip:port).
	Addr string `json:"server_address" env:"SERVER_ADDRESS"`

	// DatabaseDSN enables the Postgres user repository when set.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// JWTSecret signs access tokens. A random secret is used when empty.
	JWTSecret string `json:"jwt_secret" env:"JWT_SECRET"`

	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL time.Duration `json:"token_ttl" env:"TOKEN_TTL"`

	// TLSCert and TLSKey switch the server to HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// Config is the path to the config file.
	Config string `json:"-" env:"CONFIG"`

	Version bool `json:"-"`
}

// ParseClient parses the client configuration. args excludes the program
// name.
func ParseClient(args []string) (*ClientOptions, error) {
	opts := &ClientOptions{}

	fs := flag.NewFlagSet("taletrail", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.BaseURL, "url", api.DefaultBaseURL, "API base URL")
	fs.StringVar(&opts.Store, "store", "file", "token store: file | redis | memory")
	fs.StringVar(&opts.SessionFile, "session", "session.json", "token file for the file store")
	fs.StringVar(&opts.RedisURL, "redis", "", "redis URL for the redis store")
	fs.StringVar(&opts.CAFile, "ca", "", "path to an extra CA certificate")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (0 = none)")
	fs.StringVar(&opts.LogLevel, "log-level", "error", "log level")
	fs.StringVar(&opts.Config, "config", "", "path to config file")
	fs.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	fs.BoolVar(&opts.Version, "version", false, "show build version and date")

	// Timeout is written as a duration string in the file.
	file := &struct {
		*ClientOptions
		Timeout string `json:"timeout"`
	}{ClientOptions: opts}

	if err := parse(fs, args, &opts.Config, file); err != nil {
		return nil, err
	}
	if file.Timeout != "" && !flagSet(fs, "timeout") {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in config file: %w", err)
		}
		opts.Timeout = d
	}
	if err := env.Parse(opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	opts.Args = fs.Args()
	return opts, nil
}

// ParseServer parses the stub server configuration. args excludes the
// program name.
func ParseServer(args []string) (*ServerOptions, error) {
	opts := &ServerOptions{}

	fs := flag.NewFlagSet("taletrail-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Addr, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&opts.JWTSecret, "jwt-secret", "", "HMAC secret for access tokens")
	fs.DurationVar(&opts.TokenTTL, "token-ttl", 24*time.Hour, "access token lifetime")
	fs.StringVar(&opts.TLSCert, "tls-cert", "", "path to server certificate")
	fs.StringVar(&opts.TLSKey, "tls-key", "", "path to server key")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&opts.Config, "config", "config.json", "path to config file")
	fs.StringVar(&opts.Config, "c", "config.json", "path to config file (shorthand)")
	fs.BoolVar(&opts.Version, "version", false, "show build version and date")

	file := &struct {
		*ServerOptions
		TokenTTL string `json:"token_ttl"`
	}{ServerOptions: opts}

	if err := parse(fs, args, &opts.Config, file); err != nil {
		return nil, err
	}
	if file.TokenTTL != "" && !flagSet(fs, "token-ttl") {
		d, err := time.ParseDuration(file.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid token_ttl in config file: %w", err)
		}
		opts.TokenTTL = d
	}
	if err := env.Parse(opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return opts, nil
}

// parse applies flag defaults and the config file, then parses args again
// so that explicitly set flags win over the file.
func parse(fs *flag.FlagSet, args []string, configPath *string, file any) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	if p := os.Getenv("CONFIG"); p != "" {
		*configPath = p
	}
	if *configPath == "" {
		return nil
	}

	data, err := os.ReadFile(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := json.Unmarshal(data, file); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	return fs.Parse(args)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
