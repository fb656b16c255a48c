package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

// Books lists the catalog, optionally filtered by a free-text search.
func (c *Client) Books(ctx context.Context, search string) (*models.Envelope[[]models.Book], error) {
	endpoint := "/book"
	if search != "" {
		endpoint += "?search=" + queryEscape(search)
	}
	return call[[]models.Book](ctx, c, http.MethodGet, endpoint, nil)
}

// Book fetches a single catalog entry.
func (c *Client) Book(ctx context.Context, id string) (*models.Envelope[models.Book], error) {
	return call[models.Book](ctx, c, http.MethodGet, "/book"+pathID(id), nil)
}

// BooksByAuthor lists the books written by an author.
func (c *Client) BooksByAuthor(ctx context.Context, authorID string) (*models.Envelope[[]models.Book], error) {
	return call[[]models.Book](ctx, c, http.MethodGet, "/book/by-author"+pathID(authorID), nil)
}
