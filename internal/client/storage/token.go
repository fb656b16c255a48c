package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Keys under which the tokens are persisted.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// TokenStore holds the current bearer token in memory and mirrors it to a
// KeyValue so that it survives restarts. The persisted value is read once,
// at construction.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	kv    KeyValue
}

// NewTokenStore loads the persisted access token, if any.
func NewTokenStore(ctx context.Context, kv KeyValue) (*TokenStore, error) {
	ts := &TokenStore{kv: kv}
	token, ok, err := kv.Get(ctx, AccessTokenKey)
	if err != nil {
		return ts, err
	}
	if ok {
		ts.token = token
	}
	return ts, nil
}

// Token returns the in-memory access token, or "" when unauthenticated.
func (ts *TokenStore) Token() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.token
}

// SetToken replaces the access token. The in-memory value changes even if
// persisting fails.
func (ts *TokenStore) SetToken(ctx context.Context, token string) error {
	ts.mu.Lock()
	ts.token = token
	ts.mu.Unlock()
	return ts.kv.Set(ctx, AccessTokenKey, token)
}

// SetRefreshToken persists the refresh token issued alongside the access
// token.
func (ts *TokenStore) SetRefreshToken(ctx context.Context, token string) error {
	return ts.kv.Set(ctx, RefreshTokenKey, token)
}

// RefreshToken returns the persisted refresh token.
func (ts *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := ts.kv.Get(ctx, RefreshTokenKey)
	return v, err
}

// Remove forgets the access token and deletes both persisted tokens. Safe to
// call repeatedly.
func (ts *TokenStore) Remove(ctx context.Context) error {
	ts.mu.Lock()
	ts.token = ""
	ts.mu.Unlock()
	return ts.kv.Delete(ctx, AccessTokenKey, RefreshTokenKey)
}

// ErrNoExpiry is returned by TokenExpiry for opaque tokens and JWTs without
// an exp claim.
var ErrNoExpiry = errors.New("token carries no expiry")

// TokenExpiry reads the exp claim of a JWT access token without verifying
// its signature. Only the server can vouch for a token; this is for display.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}
