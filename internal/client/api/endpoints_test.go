package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/taletrail/internal/models"
)

// TestEndpoints pins the verb, path and body of every facade method.
func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		call     func(c *Client) error
		method   string
		uri      string
		wantBody string
		data     string
	}{
		{
			name: "signup",
			call: func(c *Client) error {
				_, err := c.Signup(ctx, models.SignupRequest{Email: "a@b.c", Password: "secret", FullName: "Ann", Username: "ann"})
				return err
			},
			method:   http.MethodPost,
			uri:      "/api/auth/signup",
			wantBody: `{"email":"a@b.c","password":"secret","fullName":"Ann","username":"ann"}`,
			data:     `{"accessToken":"a","refreshToken":"r","user":{"id":"u1","username":"ann"}}`,
		},
		{
			name: "login",
			call: func(c *Client) error {
				_, err := c.Login(ctx, models.LoginRequest{Email: "a@b.c", Password: "secret"})
				return err
			},
			method:   http.MethodPost,
			uri:      "/api/auth/login",
			wantBody: `{"email":"a@b.c","password":"secret"}`,
			data:     `{"accessToken":"a","refreshToken":"r","user":{"id":"u1","username":"ann"}}`,
		},
		{name: "book", call: func(c *Client) error { _, err := c.Book(ctx, "b1"); return err }, method: http.MethodGet, uri: "/api/book/b1", data: `{"id":"b1","title":"Dune"}`},
		{name: "books by author", call: func(c *Client) error { _, err := c.BooksByAuthor(ctx, "a1"); return err }, method: http.MethodGet, uri: "/api/book/by-author/a1", data: `[]`},
		{name: "my books", call: func(c *Client) error { _, err := c.MyBooks(ctx); return err }, method: http.MethodGet, uri: "/api/userbook/my-books", data: `[]`},
		{
			name: "add book",
			call: func(c *Client) error {
				_, err := c.AddBook(ctx, models.AddBookRequest{BookID: "b1", ReadingStatus: models.Reading, Progress: 10})
				return err
			},
			method:   http.MethodPost,
			uri:      "/api/userbook",
			wantBody: `{"bookId":"b1","readingStatus":1,"progress":10}`,
			data:     `{"id":"ub1","bookId":"b1","readingStatus":1,"progress":10}`,
		},
		{name: "remove book", call: func(c *Client) error { _, err := c.RemoveBook(ctx, "b1"); return err }, method: http.MethodDelete, uri: "/api/userbook/b1", data: `null`},
		{name: "book reviews", call: func(c *Client) error { _, err := c.BookReviews(ctx, "b1"); return err }, method: http.MethodGet, uri: "/api/review/book/b1", data: `[]`},
		{
			name: "create review",
			call: func(c *Client) error {
				_, err := c.CreateReview(ctx, models.ReviewRequest{BookID: "b1", Rating: 5, Content: "great"})
				return err
			},
			method:   http.MethodPost,
			uri:      "/api/review",
			wantBody: `{"bookId":"b1","rating":5,"content":"great"}`,
			data:     `{"id":"r1","bookId":"b1","rating":5,"content":"great"}`,
		},
		{
			name: "update review",
			call: func(c *Client) error {
				_, err := c.UpdateReview(ctx, "r1", models.ReviewUpdate{Rating: 4, Content: "good"})
				return err
			},
			method:   http.MethodPut,
			uri:      "/api/review/r1",
			wantBody: `{"rating":4,"content":"good"}`,
			data:     `{"id":"r1","bookId":"b1","rating":4,"content":"good"}`,
		},
		{name: "delete review", call: func(c *Client) error { _, err := c.DeleteReview(ctx, "r1"); return err }, method: http.MethodDelete, uri: "/api/review/r1", data: `null`},
		{name: "blogs", call: func(c *Client) error { _, err := c.Blogs(ctx, ""); return err }, method: http.MethodGet, uri: "/api/blog", data: `[]`},
		{name: "blogs filtered", call: func(c *Client) error { _, err := c.Blogs(ctx, "u1"); return err }, method: http.MethodGet, uri: "/api/blog?userId=u1", data: `[]`},
		{name: "blogs by user", call: func(c *Client) error { _, err := c.BlogsByUser(ctx, "u 2"); return err }, method: http.MethodGet, uri: "/api/blog?userId=u%202", data: `[]`},
		{name: "blog", call: func(c *Client) error { _, err := c.Blog(ctx, "p1"); return err }, method: http.MethodGet, uri: "/api/blog/p1", data: `{"id":"p1","title":"t"}`},
		{
			name: "create blog",
			call: func(c *Client) error {
				_, err := c.CreateBlog(ctx, models.BlogRequest{Title: "Hello", Content: "World"})
				return err
			},
			method:   http.MethodPost,
			uri:      "/api/blog",
			wantBody: `{"title":"Hello","content":"World"}`,
			data:     `{"id":"p1","title":"Hello","content":"World"}`,
		},
		{
			name: "update blog",
			call: func(c *Client) error {
				_, err := c.UpdateBlog(ctx, "p1", models.BlogRequest{Title: "Hi", Content: "There"})
				return err
			},
			method:   http.MethodPut,
			uri:      "/api/blog/p1",
			wantBody: `{"title":"Hi","content":"There"}`,
			data:     `{"id":"p1","title":"Hi","content":"There"}`,
		},
		{name: "delete blog", call: func(c *Client) error { _, err := c.DeleteBlog(ctx, "p1"); return err }, method: http.MethodDelete, uri: "/api/blog/p1", data: `null`},
		{name: "like blog", call: func(c *Client) error { _, err := c.LikeBlog(ctx, "p1"); return err }, method: http.MethodPost, uri: "/api/blog-like/p1", data: `null`},
		{name: "unlike blog", call: func(c *Client) error { _, err := c.UnlikeBlog(ctx, "p1"); return err }, method: http.MethodDelete, uri: "/api/blog-like/p1", data: `null`},
		{name: "my profile", call: func(c *Client) error { _, err := c.MyProfile(ctx); return err }, method: http.MethodGet, uri: "/api/user/profile", data: `{"id":"u1","username":"ann"}`},
		{
			name: "update profile",
			call: func(c *Client) error {
				_, err := c.UpdateProfile(ctx, models.ProfileUpdate{FullName: "Ann Lee", Username: "ann"})
				return err
			},
			method:   http.MethodPut,
			uri:      "/api/user/profile",
			wantBody: `{"fullName":"Ann Lee","username":"ann"}`,
			data:     `{"id":"u1","username":"ann","fullName":"Ann Lee"}`,
		},
		{name: "public profile", call: func(c *Client) error { _, err := c.PublicProfile(ctx, "ann"); return err }, method: http.MethodGet, uri: "/api/profile/ann", data: `{"id":"u1","username":"ann"}`},
		{name: "authors", call: func(c *Client) error { _, err := c.Authors(ctx); return err }, method: http.MethodGet, uri: "/api/author", data: `[{"id":"a1","name":"Frank Herbert","bookCount":1}]`},
		{name: "author", call: func(c *Client) error { _, err := c.Author(ctx, "a1"); return err }, method: http.MethodGet, uri: "/api/author/a1", data: `{"id":"a1","name":"Frank Herbert","bookCount":1}`},
		{name: "publishers", call: func(c *Client) error { _, err := c.Publishers(ctx); return err }, method: http.MethodGet, uri: "/api/publisher", data: `[]`},
		{name: "publisher", call: func(c *Client) error { _, err := c.Publisher(ctx, "p1"); return err }, method: http.MethodGet, uri: "/api/publisher/p1", data: `{"id":"p1","name":"Chilton","bookCount":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := newTokens(t, "tok")
			var method, uri string
			var body []byte
			c := newTestClient(tokens, func(req *http.Request) (*http.Response, error) {
				method, uri = req.Method, req.URL.RequestURI()
				if req.Body != nil {
					body, _ = io.ReadAll(req.Body)
				}
				return jsonResponse(http.StatusOK, `{"success":true,"message":"ok","data":`+tt.data+`}`), nil
			})

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.method, method)
			assert.Equal(t, tt.uri, uri)
			if tt.wantBody == "" {
				assert.Empty(t, body)
			} else {
				assert.JSONEq(t, tt.wantBody, string(body))
				assert.True(t, json.Valid(body))
			}
		})
	}
}
