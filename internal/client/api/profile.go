package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

// MyProfile returns the account behind the current token.
func (c *Client) MyProfile(ctx context.Context) (*models.Envelope[models.User], error) {
	return call[models.User](ctx, c, http.MethodGet, "/user/profile", nil)
}

// UpdateProfile saves profile changes server-side. Callers mirror the result
// into the session with session.UpdateUser.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Envelope[models.User], error) {
	return call[models.User](ctx, c, http.MethodPut, "/user/profile", update)
}

// PublicProfile looks a user up by handle.
func (c *Client) PublicProfile(ctx context.Context, username string) (*models.Envelope[models.PublicProfile], error) {
	return call[models.PublicProfile](ctx, c, http.MethodGet, "/profile"+pathID(username), nil)
}
