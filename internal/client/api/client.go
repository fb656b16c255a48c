// Package api is the TaleTrail REST client: a request executor that attaches
// the bearer token and classifies failures, and one typed method per backend
// endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/models"
)

// DefaultBaseURL is the hosted TaleTrail API.
const DefaultBaseURL = "https://taletrail-backend.onrender.com/api"

// Tokens is the part of the token store the executor needs.
type Tokens interface {
	Token() string
	Remove(ctx context.Context) error
}

// Client performs TaleTrail API calls. It is safe for concurrent use; calls
// are independent and never queued or deduplicated.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  Tokens
	log     *zap.Logger

	mu        sync.RWMutex
	onExpired func(ctx context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for baseURL that authenticates with tokens.
func New(baseURL string, tokens Tokens, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	c.onExpired = c.discardTokens
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionExpired installs the handler run whenever a response has status
// 401. It replaces the default, which only removes the stored tokens, so
// the handler must clear them itself.
func (c *Client) OnSessionExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

func (c *Client) discardTokens(ctx context.Context) {
	if err := c.tokens.Remove(ctx); err != nil {
		c.log.Warn("failed to remove tokens", zap.Error(err))
	}
}

func (c *Client) sessionExpired(ctx context.Context) {
	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()
	fn(ctx)
}

// request performs exactly one HTTP call and returns the body of a 2xx
// response.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, header http.Header) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("API request failed", zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn("API request unauthorized, ending session")
		c.sessionExpired(ctx)
		return nil, &SessionExpiredError{Endpoint: endpoint}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("API request failed", zap.Error(err))
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		msg := ""
		if json.Unmarshal(data, &errBody) == nil {
			msg = errBody.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		log.Warn("API request failed", zap.String("message", msg))
		return nil, &RequestFailedError{StatusCode: resp.StatusCode, Message: msg}
	}

	log.Debug("API request completed")
	return data, nil
}

// call runs request and decodes the envelope. Go methods cannot be generic,
// so the facade methods go through this function.
func call[T any](ctx context.Context, c *Client, method, endpoint string, body any) (*models.Envelope[T], error) {
	data, err := c.request(ctx, method, endpoint, body, nil)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    json.RawMessage     `json:"data"`
		Error   *models.ErrorDetail `json:"error,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	env := models.Envelope[T]{Success: raw.Success, Message: raw.Message, Error: raw.Error}
	if !raw.Success {
		return &env, nil
	}

	// void endpoints accept whatever acknowledgement the server sends
	if _, void := any(env.Data).(models.Empty); void {
		return &env, nil
	}
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	if err := checkPayload(env.Data); err != nil {
		return nil, &InvalidPayloadError{Endpoint: endpoint, Err: err}
	}
	return &env, nil
}

// Unwrap folds a success=false envelope into an error so callers can use a
// single error path.
func Unwrap[T any](env *models.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if err := env.Err(); err != nil {
		return zero, err
	}
	return env.Data, nil
}

// queryEscape matches JavaScript's encodeURIComponent for the characters that
// matter here: spaces become %20, never '+'.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func pathID(id string) string {
	return "/" + url.PathEscape(id)
}
