package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

// MyBooks lists the current user's shelf.
func (c *Client) MyBooks(ctx context.Context) (*models.Envelope[[]models.UserBook], error) {
	return call[[]models.UserBook](ctx, c, http.MethodGet, "/userbook/my-books", nil)
}

// AddBook puts a catalog book on the user's shelf.
func (c *Client) AddBook(ctx context.Context, req models.AddBookRequest) (*models.Envelope[models.UserBook], error) {
	return call[models.UserBook](ctx, c, http.MethodPost, "/userbook", req)
}

// UpdateBookStatus changes the reading status and progress of a shelved book.
func (c *Client) UpdateBookStatus(ctx context.Context, bookID string, update models.StatusUpdate) (*models.Envelope[models.UserBook], error) {
	return call[models.UserBook](ctx, c, http.MethodPut, "/userbook"+pathID(bookID), update)
}

// RemoveBook takes a book off the shelf.
func (c *Client) RemoveBook(ctx context.Context, bookID string) (*models.Envelope[models.Empty], error) {
	return call[models.Empty](ctx, c, http.MethodDelete, "/userbook"+pathID(bookID), nil)
}
