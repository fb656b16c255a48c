package api

import (
	"context"
	"net/http"

	"github.com/atinyakov/taletrail/internal/models"
)

// Blogs lists posts, restricted to one author when userID is set.
func (c *Client) Blogs(ctx context.Context, userID string) (*models.Envelope[[]models.Blog], error) {
	endpoint := "/blog"
	if userID != "" {
		endpoint += "?userId=" + queryEscape(userID)
	}
	return call[[]models.Blog](ctx, c, http.MethodGet, endpoint, nil)
}

// BlogsByUser always sends the userId filter, even when empty.
func (c *Client) BlogsByUser(ctx context.Context, userID string) (*models.Envelope[[]models.Blog], error) {
	return call[[]models.Blog](ctx, c, http.MethodGet, "/blog?userId="+queryEscape(userID), nil)
}

func (c *Client) Blog(ctx context.Context, id string) (*models.Envelope[models.Blog], error) {
	return call[models.Blog](ctx, c, http.MethodGet, "/blog"+pathID(id), nil)
}

func (c *Client) CreateBlog(ctx context.Context, req models.BlogRequest) (*models.Envelope[models.Blog], error) {
	return call[models.Blog](ctx, c, http.MethodPost, "/blog", req)
}

func (c *Client) UpdateBlog(ctx context.Context, id string, req models.BlogRequest) (*models.Envelope[models.Blog], error) {
	return call[models.Blog](ctx, c, http.MethodPut, "/blog"+pathID(id), req)
}

func (c *Client) DeleteBlog(ctx context.Context, id string) (*models.Envelope[models.Empty], error) {
	return call[models.Empty](ctx, c, http.MethodDelete, "/blog"+pathID(id), nil)
}

// LikeBlog and UnlikeBlog are not deduplicated: two concurrent likes send
// two requests.
func (c *Client) LikeBlog(ctx context.Context, id string) (*models.Envelope[models.Empty], error) {
	return call[models.Empty](ctx, c, http.MethodPost, "/blog-like"+pathID(id), nil)
}

func (c *Client) UnlikeBlog(ctx context.Context, id string) (*models.Envelope[models.Empty], error) {
	return call[models.Empty](ctx, c, http.MethodDelete, "/blog-like"+pathID(id), nil)
}
