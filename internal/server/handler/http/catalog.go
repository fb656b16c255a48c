package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/taletrail/internal/models"
)

// CatalogStore is the read-only catalog.
type CatalogStore interface {
	Books(search string) []models.Book
	Book(id string) (models.Book, error)
	BooksByAuthor(authorID string) ([]models.Book, error)
	Authors() []models.Author
	Author(id string) (models.Author, error)
	Publishers() []models.Publisher
	Publisher(id string) (models.Publisher, error)
}

// CatalogHandler serves books, authors and publishers.
type CatalogHandler struct {
	Store CatalogStore
}

func (h *CatalogHandler) Books(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, "Books retrieved successfully", h.Store.Books(r.URL.Query().Get("search")))
}

func (h *CatalogHandler) Book(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.Book(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Book")
		return
	}
	ok(w, http.StatusOK, "Book retrieved successfully", b)
}

func (h *CatalogHandler) BooksByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.BooksByAuthor(chi.URLParam(r, "authorId"))
	if err != nil {
		writeError(w, err, "Author")
		return
	}
	ok(w, http.StatusOK, "Books retrieved successfully", books)
}

func (h *CatalogHandler) Authors(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, "Authors retrieved successfully", h.Store.Authors())
}

func (h *CatalogHandler) Author(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.Author(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Author")
		return
	}
	ok(w, http.StatusOK, "Author retrieved successfully", a)
}

func (h *CatalogHandler) Publishers(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, "Publishers retrieved successfully", h.Store.Publishers())
}

func (h *CatalogHandler) Publisher(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Publisher(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Publisher")
		return
	}
	ok(w, http.StatusOK, "Publisher retrieved successfully", p)
}
