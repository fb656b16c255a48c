package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Library *LibraryHandler
	Social  *SocialHandler
}

// NewRouter constructs the stub TaleTrail API under /api.
//
// Catalog, review listings, blogs and public profiles are public; a valid
// bearer token there only personalises the response. Library, writes and
// the own profile require a token.
//
// Middleware chain (applied in order):
//  1. Recoverer                          : turns panics into 500s
//  2. AllowContentType("application/json"): rejects non-JSON bodies
//  3. WithRequestLogging(logger)         : logs each request
func NewRouter(h Handlers, tokens middleware.TokenParser, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "Route not found", "NotFound", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusMethodNotAllowed, "Method not allowed", "MethodNotAllowed", r.Method)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Auth.Signup)
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalUser(tokens))

			r.Get("/book", h.Catalog.Books)
			r.Get("/book/{id}", h.Catalog.Book)
			r.Get("/book/by-author/{authorId}", h.Catalog.BooksByAuthor)
			r.Get("/author", h.Catalog.Authors)
			r.Get("/author/{id}", h.Catalog.Author)
			r.Get("/publisher", h.Catalog.Publishers)
			r.Get("/publisher/{id}", h.Catalog.Publisher)
			r.Get("/review/book/{bookId}", h.Social.BookReviews)
			r.Get("/blog", h.Social.Blogs)
			r.Get("/blog/{id}", h.Social.Blog)
			r.Get("/profile/{username}", h.Auth.PublicProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(tokens))

			r.Get("/userbook/my-books", h.Library.MyBooks)
			r.Post("/userbook", h.Library.Add)
			r.Put("/userbook/{bookId}", h.Library.Update)
			r.Delete("/userbook/{bookId}", h.Library.Remove)

			r.Post("/review", h.Social.CreateReview)
			r.Put("/review/{id}", h.Social.UpdateReview)
			r.Delete("/review/{id}", h.Social.DeleteReview)

			r.Post("/blog", h.Social.CreateBlog)
			r.Put("/blog/{id}", h.Social.UpdateBlog)
			r.Delete("/blog/{id}", h.Social.DeleteBlog)
			r.Post("/blog-like/{id}", h.Social.Like)
			r.Delete("/blog-like/{id}", h.Social.Unlike)

			r.Get("/user/profile", h.Auth.MyProfile)
			r.Put("/user/profile", h.Auth.UpdateProfile)
		})
	})

	return r
}
