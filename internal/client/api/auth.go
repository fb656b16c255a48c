package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.Envelope[models.AuthPayload], error) {
	return call[models.AuthPayload](ctx, c, http.MethodPost, "/auth/signup", req)
}

// Login exchanges credentials for an access and refresh token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.Envelope[models.AuthPayload], error) {
	return call[models.AuthPayload](ctx, c, http.MethodPost, "/auth/login", req)
}
