package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/client/api"
	"github.com/atinyakov/taletrail/internal/client/storage"
	"github.com/atinyakov/taletrail/internal/models"
	"github.com/atinyakov/taletrail/internal/repository"
	"github.com/atinyakov/taletrail/internal/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	auth := service.NewAuthService(repository.NewMemoryUserRepository(), []byte("secret"), time.Hour)
	store := repository.NewStore()
	store.Seed()

	router := NewRouter(Handlers{
		Auth:    &AuthHandler{AuthService: auth},
		Catalog: &CatalogHandler{Store: store},
		Library: &LibraryHandler{Store: store},
		Social:  &SocialHandler{Store: store, Users: auth},
	}, auth, zap.NewNop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type user struct {
	client *api.Client
	tokens *storage.TokenStore
	me     models.User
}

func newClient(t *testing.T, srv *httptest.Server) user {
	t.Helper()
	tokens, err := storage.NewTokenStore(context.Background(), storage.NewMemoryStore())
	require.NoError(t, err)
	return user{client: api.New(srv.URL+"/api", tokens, api.WithHTTPClient(srv.Client())), tokens: tokens}
}

func signUp(t *testing.T, srv *httptest.Server, name string) user {
	t.Helper()
	ctx := context.Background()
	u := newClient(t, srv)
	payload, err := api.Unwrap(u.client.Signup(ctx, models.SignupRequest{
		Email: name + "@example.com", Password: "secret1", FullName: strings.ToUpper(name), Username: name,
	}))
	require.NoError(t, err)
	require.NoError(t, u.tokens.SetToken(ctx, payload.AccessToken))
	u.me = payload.User
	return u
}

func TestRouter_PublicCatalog(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv).client
	ctx := context.Background()

	books, err := api.Unwrap(c.Books(ctx, "the hobbit"))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)

	book, err := api.Unwrap(c.Book(ctx, "good-omens"))
	require.NoError(t, err)
	assert.Len(t, book.Authors, 2)

	byAuthor, err := api.Unwrap(c.BooksByAuthor(ctx, "jrr-tolkien"))
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	authors, err := api.Unwrap(c.Authors(ctx))
	require.NoError(t, err)
	assert.Len(t, authors, 5)

	pub, err := api.Unwrap(c.Publisher(ctx, "gollancz"))
	require.NoError(t, err)
	assert.Equal(t, 1, pub.BookCount)

	pubs, err := api.Unwrap(c.Publishers(ctx))
	require.NoError(t, err)
	assert.Len(t, pubs, 4)

	_, err = c.Book(ctx, "missing")
	var failed *api.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusNotFound, failed.StatusCode)
	assert.Equal(t, "Book not found", failed.Message)
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv).client

	_, err := c.MyBooks(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	_, err = c.CreateBlog(context.Background(), models.BlogRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, api.ErrSessionExpired)
}

func TestRouter_AuthFlow(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	ann := signUp(t, srv, "ann")

	me, err := api.Unwrap(ann.client.MyProfile(ctx))
	require.NoError(t, err)
	assert.Equal(t, ann.me.ID, me.ID)

	_, err = newClient(t, srv).client.Signup(ctx, models.SignupRequest{
		Email: "ann@example.com", Password: "secret1", FullName: "Other", Username: "other",
	})
	var failed *api.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusConflict, failed.StatusCode)
	assert.Equal(t, "Email or username already taken", failed.Message)

	fresh := newClient(t, srv)
	payload, err := api.Unwrap(fresh.client.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: "secret1"}))
	require.NoError(t, err)
	assert.Equal(t, ann.me.ID, payload.User.ID)

	// wrong credentials come back as 401, which the client treats as an
	// ended session
	_, err = fresh.client.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	updated, err := api.Unwrap(ann.client.UpdateProfile(ctx, models.ProfileUpdate{FullName: "Ann Lee", Username: "annlee", Bio: "reader"}))
	require.NoError(t, err)
	assert.Equal(t, "annlee", updated.Username)

	pub, err := api.Unwrap(fresh.client.PublicProfile(ctx, "annlee"))
	require.NoError(t, err)
	assert.Equal(t, "reader", pub.Bio)
}

func TestRouter_Library(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	ann := signUp(t, srv, "ann")

	shelf, err := api.Unwrap(ann.client.MyBooks(ctx))
	require.NoError(t, err)
	assert.Empty(t, shelf)

	added, err := api.Unwrap(ann.client.AddBook(ctx, models.AddBookRequest{BookID: "dune", ReadingStatus: models.Reading, Progress: 10}))
	require.NoError(t, err)
	assert.Equal(t, "Dune", added.BookTitle)
	assert.NotEmpty(t, added.StartedAt)

	_, err = ann.client.AddBook(ctx, models.AddBookRequest{BookID: "dune"})
	var failed *api.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusConflict, failed.StatusCode)

	_, err = ann.client.UpdateBookStatus(ctx, "dune", models.StatusUpdate{ReadingStatus: models.Completed, Progress: 101})
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusBadRequest, failed.StatusCode)

	done, err := api.Unwrap(ann.client.UpdateBookStatus(ctx, "dune", models.StatusUpdate{ReadingStatus: models.Completed, Progress: 100}))
	require.NoError(t, err)
	assert.Equal(t, models.Completed, done.ReadingStatus)
	assert.NotEmpty(t, done.CompletedAt)

	bob := signUp(t, srv, "bob")
	bobShelf, err := api.Unwrap(bob.client.MyBooks(ctx))
	require.NoError(t, err)
	assert.Empty(t, bobShelf)

	_, err = api.Unwrap(ann.client.RemoveBook(ctx, "dune"))
	require.NoError(t, err)
	shelf, err = api.Unwrap(ann.client.MyBooks(ctx))
	require.NoError(t, err)
	assert.Empty(t, shelf)
}

func TestRouter_ReviewsOwnership(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	ann := signUp(t, srv, "ann")
	bob := signUp(t, srv, "bob")

	review, err := api.Unwrap(ann.client.CreateReview(ctx, models.ReviewRequest{BookID: "earthsea", Rating: 5, Content: "Beautiful"}))
	require.NoError(t, err)
	assert.Equal(t, "ann", review.Username)

	_, err = bob.client.UpdateReview(ctx, review.ID, models.ReviewUpdate{Rating: 1, Content: "no"})
	var failed *api.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusForbidden, failed.StatusCode)

	_, err = api.Unwrap(ann.client.UpdateReview(ctx, review.ID, models.ReviewUpdate{Rating: 4, Content: "Lovely"}))
	require.NoError(t, err)

	reviews, err := api.Unwrap(newClient(t, srv).client.BookReviews(ctx, "earthsea"))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)

	_, err = api.Unwrap(ann.client.DeleteReview(ctx, review.ID))
	require.NoError(t, err)
}

func TestRouter_BlogsAndLikes(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	ann := signUp(t, srv, "ann")
	bob := signUp(t, srv, "bob")

	post, err := api.Unwrap(ann.client.CreateBlog(ctx, models.BlogRequest{Title: "On Dune", Content: "Spice must flow."}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := api.Unwrap(bob.client.LikeBlog(ctx, post.ID))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen, err := api.Unwrap(bob.client.Blog(ctx, post.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, seen.LikeCount)
	assert.True(t, seen.IsLikedByCurrentUser)

	anon, err := api.Unwrap(newClient(t, srv).client.Blog(ctx, post.ID))
	require.NoError(t, err)
	assert.False(t, anon.IsLikedByCurrentUser)

	_, err = api.Unwrap(bob.client.UnlikeBlog(ctx, post.ID))
	require.NoError(t, err)

	annPosts, err := api.Unwrap(bob.client.BlogsByUser(ctx, ann.me.ID))
	require.NoError(t, err)
	require.Len(t, annPosts, 1)
	assert.Equal(t, 0, annPosts[0].LikeCount)

	all, err := api.Unwrap(bob.client.BlogsByUser(ctx, ""))
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = bob.client.DeleteBlog(ctx, post.ID)
	var failed *api.RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusForbidden, failed.StatusCode)

	edited, err := api.Unwrap(ann.client.UpdateBlog(ctx, post.ID, models.BlogRequest{Title: "On Dune (2)", Content: "More spice."}))
	require.NoError(t, err)
	assert.Equal(t, "On Dune (2)", edited.Title)

	_, err = api.Unwrap(ann.client.DeleteBlog(ctx, post.ID))
	require.NoError(t, err)
	remaining, err := api.Unwrap(ann.client.Blogs(ctx, ""))
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newServer(t)
	resp, err := srv.Client().Get(srv.URL + "/api/nowhere")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
