package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/taletrail/internal/middleware"
	"github.com/atinyakov/taletrail/internal/models"
)

// SocialStore holds reviews, blogs and likes.
type SocialStore interface {
	Reviews(bookID string) ([]models.Review, error)
	CreateReview(author models.User, req models.ReviewRequest) (models.Review, error)
	UpdateReview(userID, id string, u models.ReviewUpdate) (models.Review, error)
	DeleteReview(userID, id string) error

	Blogs(authorID, viewerID string) []models.Blog
	Blog(id, viewerID string) (models.Blog, error)
	CreateBlog(author models.User, req models.BlogRequest) models.Blog
	UpdateBlog(userID, id string, req models.BlogRequest) (models.Blog, error)
	DeleteBlog(userID, id string) error
	Like(userID, id string) error
	Unlike(userID, id string) error
}

// UserLookup resolves the author of new reviews and posts.
type UserLookup interface {
	Profile(ctx context.Context, id string) (models.User, error)
}

// SocialHandler serves reviews, blogs and likes.
type SocialHandler struct {
	Store SocialStore
	Users UserLookup
}

func (h *SocialHandler) author(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	u, err := h.Users.Profile(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, "User")
		return models.User{}, false
	}
	return u, true
}

func (h *SocialHandler) BookReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.Reviews(chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, err, "Book")
		return
	}
	ok(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *SocialHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if !decode(w, r, &req) {
		return
	}
	author, found := h.author(w, r)
	if !found {
		return
	}
	review, err := h.Store.CreateReview(author, req)
	if err != nil {
		writeError(w, err, "Review")
		return
	}
	ok(w, http.StatusCreated, "Review created successfully", review)
}

func (h *SocialHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewUpdate
	if !decode(w, r, &req) {
		return
	}
	review, err := h.Store.UpdateReview(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "Review")
		return
	}
	ok(w, http.StatusOK, "Review updated successfully", review)
}

func (h *SocialHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteReview(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Review")
		return
	}
	ok[any](w, http.StatusOK, "Review deleted successfully", nil)
}

func (h *SocialHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	blogs := h.Store.Blogs(r.URL.Query().Get("userId"), middleware.GetUserIDFromContext(r.Context()))
	ok(w, http.StatusOK, "Blogs retrieved successfully", blogs)
}

func (h *SocialHandler) Blog(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.Blog(chi.URLParam(r, "id"), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err, "Blog")
		return
	}
	ok(w, http.StatusOK, "Blog retrieved successfully", b)
}

func (h *SocialHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req models.BlogRequest
	if !decode(w, r, &req) {
		return
	}
	author, found := h.author(w, r)
	if !found {
		return
	}
	ok(w, http.StatusCreated, "Blog created successfully", h.Store.CreateBlog(author, req))
}

func (h *SocialHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req models.BlogRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.Store.UpdateBlog(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "Blog")
		return
	}
	ok(w, http.StatusOK, "Blog updated successfully", b)
}

func (h *SocialHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteBlog(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Blog")
		return
	}
	ok[any](w, http.StatusOK, "Blog deleted successfully", nil)
}

func (h *SocialHandler) Like(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Like(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Blog")
		return
	}
	ok[any](w, http.StatusOK, "Blog liked", nil)
}

func (h *SocialHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Unlike(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "Blog")
		return
	}
	ok[any](w, http.StatusOK, "Blog unliked", nil)
}
