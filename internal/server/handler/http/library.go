package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/taletrail/internal/middleware"
	"github.com/atinyakov/taletrail/internal/models"
)

// LibraryStore holds the per-user shelves.
type LibraryStore interface {
	Library(userID string) []models.UserBook
	AddToLibrary(userID string, req models.AddBookRequest) (models.UserBook, error)
	UpdateLibrary(userID, bookID string, u models.StatusUpdate) (models.UserBook, error)
	RemoveFromLibrary(userID, bookID string) error
}

// LibraryHandler serves the authenticated user's shelf.
type LibraryHandler struct {
	Store LibraryStore
}

func (h *LibraryHandler) MyBooks(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, "Library retrieved successfully", h.Store.Library(middleware.GetUserIDFromContext(r.Context())))
}

func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddBookRequest
	if !decode(w, r, &req) {
		return
	}
	ub, err := h.Store.AddToLibrary(middleware.GetUserIDFromContext(r.Context()), req)
	if err != nil {
		writeError(w, err, "Book")
		return
	}
	ok(w, http.StatusCreated, "Book added to library", ub)
}

func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdate
	if !decode(w, r, &req) {
		return
	}
	ub, err := h.Store.UpdateLibrary(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "bookId"), req)
	if err != nil {
		writeError(w, err, "Library entry")
		return
	}
	ok(w, http.StatusOK, "Reading status updated", ub)
}

func (h *LibraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	err := h.Store.RemoveFromLibrary(middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, err, "Library entry")
		return
	}
	ok[any](w, http.StatusOK, "Book removed from library", nil)
}
