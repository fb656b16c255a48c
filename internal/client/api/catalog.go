package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

func (c *Client) Authors(ctx context.Context) (*models.Envelope[[]models.Author], error) {
	return call[[]models.Author](ctx, c, http.MethodGet, "/author", nil)
}

func (c *Client) Author(ctx context.Context, id string) (*models.Envelope[models.Author], error) {
	return call[models.Author](ctx, c, http.MethodGet, "/author"+pathID(id), nil)
}

func (c *Client) Publishers(ctx context.Context) (*models.Envelope[[]models.Publisher], error) {
	return call[[]models.Publisher](ctx, c, http.MethodGet, "/publisher", nil)
}

func (c *Client) Publisher(ctx context.Context, id string) (*models.Envelope[models.Publisher], error) {
	return call[models.Publisher](ctx, c, http.MethodGet, "/publisher"+pathID(id), nil)
}
