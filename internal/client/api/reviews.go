package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

func (c *Client) BookReviews(ctx context.Context, bookID string) (*models.Envelope[[]models.Review], error) {
	return call[[]models.Review](ctx, c, http.MethodGet, "/review/book"+pathID(bookID), nil)
}

func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) (*models.Envelope[models.Review], error) {
	return call[models.Review](ctx, c, http.MethodPost, "/review", req)
}

func (c *Client) UpdateReview(ctx context.Context, id string, update models.ReviewUpdate) (*models.Envelope[models.Review], error) {
	return call[models.Review](ctx, c, http.MethodPut, "/review"+pathID(id), update)
}

func (c *Client) DeleteReview(ctx context.Context, id string) (*models.Envelope[models.Empty], error) {
	return call[models.Empty](ctx, c, http.MethodDelete, "/review"+pathID(id), nil)
}
