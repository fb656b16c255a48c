package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/taletrail/internal/client/api"
	"github.com/atinyakov/taletrail/internal/client/storage"
	"github.com/atinyakov/taletrail/internal/models"
)

func (s *Shell) register() map[string]command {
	cmds := map[string]command{
		"help":   {usage: "help", help: "show this list", run: s.help},
		"exit":   {usage: "exit", help: "leave the shell", run: func(context.Context, []string) error { return errExit }},
		"login":  {usage: "login [email]", help: "sign in", run: s.login},
		"signup": {usage: "signup", help: "create an account", run: s.signup},
		"logout": {usage: "logout", help: "sign out", run: s.logout},
		"whoami": {usage: "whoami", help: "show the session state", run: s.whoami},

		"books":      {usage: "books [search...]", help: "browse or search the catalog", run: s.books},
		"book":       {usage: "book <id>", help: "show a book and its reviews", run: s.book},
		"by-author":  {usage: "by-author <authorId>", help: "list books by an author", run: s.byAuthor},
		"authors":    {usage: "authors", help: "list authors", run: s.authors},
		"author":     {usage: "author <id>", help: "show an author and their books", run: s.author},
		"publishers": {usage: "publishers", help: "list publishers", run: s.publishers},
		"publisher":  {usage: "publisher <id>", help: "show a publisher", run: s.publisher},

		"library":  {usage: "library [status]", help: "list your shelf", auth: true, run: s.library},
		"add":      {usage: "add <bookId> [status] [progress]", help: "add a book to your shelf", auth: true, run: s.add},
		"status":   {usage: "status <bookId> <status> [progress]", help: "update reading status", auth: true, run: s.status},
		"progress": {usage: "progress <bookId> <percent>", help: "update reading progress", auth: true, run: s.progress},
		"remove":   {usage: "remove <bookId>", help: "remove a book from your shelf", auth: true, run: s.remove},
		"stats":    {usage: "stats", help: "summarise your shelf", auth: true, run: s.stats},

		"reviews":       {usage: "reviews <bookId>", help: "list reviews of a book", run: s.reviews},
		"review":        {usage: "review <bookId> <rating>", help: "review a book", auth: true, run: s.review},
		"edit-review":   {usage: "edit-review <id> <rating>", help: "change a review", auth: true, run: s.editReview},
		"delete-review": {usage: "delete-review <id>", help: "delete a review", auth: true, run: s.deleteReview},

		"blogs":       {usage: "blogs [userId]", help: "list blog posts", run: s.blogs},
		"blog":        {usage: "blog <id>", help: "read a blog post", run: s.blog},
		"post":        {usage: "post", help: "write a blog post", auth: true, run: s.post},
		"edit-blog":   {usage: "edit-blog <id>", help: "edit a blog post", auth: true, run: s.editBlog},
		"delete-blog": {usage: "delete-blog <id>", help: "delete a blog post", auth: true, run: s.deleteBlog},
		"like":        {usage: "like <blogId>", help: "like a post", auth: true, run: s.like},
		"unlike":      {usage: "unlike <blogId>", help: "remove your like", auth: true, run: s.unlike},

		"profile":        {usage: "profile", help: "show your profile", auth: true, run: s.profile},
		"update-profile": {usage: "update-profile", help: "edit your profile", auth: true, run: s.updateProfile},
		"user":           {usage: "user <username>", help: "show a public profile and posts", run: s.user},
	}
	cmds["quit"] = command{usage: "quit", help: "leave the shell", run: cmds["exit"].run}
	return cmds
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return &usageError{usage: usage}
	}
	return nil
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, v)
	}
	return n, nil
}

func (s *Shell) done(format string, a ...any) error {
	fmt.Fprintf(s.out, format+"\n", a...)
	return nil
}

// Session

func (s *Shell) login(ctx context.Context, args []string) error {
	var email string
	var err error
	if len(args) > 0 {
		email = args[0]
	} else if email, err = s.prompt.Line("Email: "); err != nil {
		return err
	}
	password, err := s.prompt.Secret("Password: ")
	if err != nil {
		return err
	}
	if err := s.sess.Login(ctx, email, password); err != nil {
		return errNotified
	}
	return nil
}

func (s *Shell) signup(ctx context.Context, _ []string) error {
	var req models.SignupRequest
	var err error
	if req.Email, err = s.prompt.Line("Email: "); err != nil {
		return err
	}
	if req.FullName, err = s.prompt.Line("Full name: "); err != nil {
		return err
	}
	if req.Username, err = s.prompt.Line("Username: "); err != nil {
		return err
	}
	if req.Password, err = s.prompt.Secret("Password: "); err != nil {
		return err
	}
	if err := s.sess.Signup(ctx, req); err != nil {
		return errNotified
	}
	return nil
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	return s.sess.Logout(ctx)
}

func (s *Shell) whoami(_ context.Context, _ []string) error {
	u, ok := s.sess.User()
	if !ok {
		return s.done("Not signed in (%s).", s.sess.State())
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "User:\t%s (@%s)\n", u.FullName, u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	if exp, err := storage.TokenExpiry(s.tokens.Token()); err == nil {
		fmt.Fprintf(tw, "Token expires:\t%s\n", exp.Local().Format(time.RFC1123))
	} else {
		fmt.Fprintln(tw, "Token expires:\tunknown")
	}
	return tw.Flush()
}

// Catalog

func (s *Shell) books(ctx context.Context, args []string) error {
	books, err := api.Unwrap(s.client.Books(ctx, strings.Join(args, " ")))
	if err != nil {
		return err
	}
	return renderBooks(s.out, books)
}

func (s *Shell) book(ctx context.Context, args []string) error {
	if err := need(args, 1, "book <id>"); err != nil {
		return err
	}
	book, err := api.Unwrap(s.client.Book(ctx, args[0]))
	if err != nil {
		return err
	}
	if err := renderBook(s.out, book); err != nil {
		return err
	}
	reviews, err := api.Unwrap(s.client.BookReviews(ctx, book.ID))
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return renderReviews(s.out, reviews)
}

func (s *Shell) byAuthor(ctx context.Context, args []string) error {
	if err := need(args, 1, "by-author <authorId>"); err != nil {
		return err
	}
	books, err := api.Unwrap(s.client.BooksByAuthor(ctx, args[0]))
	if err != nil {
		return err
	}
	return renderBooks(s.out, books)
}

func (s *Shell) authors(ctx context.Context, _ []string) error {
	authors, err := api.Unwrap(s.client.Authors(ctx))
	if err != nil {
		return err
	}
	return renderAuthors(s.out, authors)
}

func (s *Shell) author(ctx context.Context, args []string) error {
	if err := need(args, 1, "author <id>"); err != nil {
		return err
	}
	author, err := api.Unwrap(s.client.Author(ctx, args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n", author.Name)
	if author.Bio != "" {
		fmt.Fprintf(s.out, "%s\n", author.Bio)
	}
	books, err := api.Unwrap(s.client.BooksByAuthor(ctx, author.ID))
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return renderBooks(s.out, books)
}

func (s *Shell) publishers(ctx context.Context, _ []string) error {
	publishers, err := api.Unwrap(s.client.Publishers(ctx))
	if err != nil {
		return err
	}
	return renderPublishers(s.out, publishers)
}

func (s *Shell) publisher(ctx context.Context, args []string) error {
	if err := need(args, 1, "publisher <id>"); err != nil {
		return err
	}
	p, err := api.Unwrap(s.client.Publisher(ctx, args[0]))
	if err != nil {
		return err
	}
	tw := newTable(s.out)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	if p.FoundedYear != 0 {
		fmt.Fprintf(tw, "Founded:\t%d\n", p.FoundedYear)
	}
	if p.Address != "" {
		fmt.Fprintf(tw, "Address:\t%s\n", p.Address)
	}
	fmt.Fprintf(tw, "Books:\t%d\n", p.BookCount)
	if p.Description != "" {
		fmt.Fprintf(tw, "\t%s\n", p.Description)
	}
	return tw.Flush()
}

// Library

func (s *Shell) library(ctx context.Context, args []string) error {
	books, err := api.Unwrap(s.client.MyBooks(ctx))
	if err != nil {
		return err
	}
	if len(args) > 0 {
		status, err := models.ParseReadingStatus(strings.Join(args, " "))
		if err != nil {
			return err
		}
		books = models.FilterByStatus(books, status)
	}
	return renderLibrary(s.out, books)
}

// statusArgs parses "[status] [progress]". progress is nil when omitted.
func statusArgs(args []string, def models.ReadingStatus) (models.ReadingStatus, *int, error) {
	status := def
	if len(args) > 0 {
		var err error
		if status, err = models.ParseReadingStatus(args[0]); err != nil {
			return 0, nil, err
		}
	}
	if len(args) < 2 {
		return status, nil, nil
	}
	progress, err := parseProgress(args[1])
	if err != nil {
		return 0, nil, err
	}
	return status, &progress, nil
}

func parseProgress(v string) (int, error) {
	progress, err := parseInt("progress", strings.TrimSuffix(v, "%"))
	if err != nil {
		return 0, err
	}
	if progress < 0 || progress > 100 {
		return 0, fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}
	return progress, nil
}

// shelved finds bookID on the user's shelf.
func (s *Shell) shelved(ctx context.Context, bookID string) (models.UserBook, error) {
	books, err := api.Unwrap(s.client.MyBooks(ctx))
	if err != nil {
		return models.UserBook{}, err
	}
	for _, b := range books {
		if b.BookID == bookID {
			return b, nil
		}
	}
	return models.UserBook{}, fmt.Errorf("book %q is not in your library", bookID)
}

func (s *Shell) add(ctx context.Context, args []string) error {
	if err := need(args, 1, "add <bookId> [status] [progress]"); err != nil {
		return err
	}
	status, p, err := statusArgs(args[1:], models.ToRead)
	if err != nil {
		return err
	}
	progress := 0
	switch {
	case p != nil:
		progress = *p
	case status == models.Completed:
		progress = 100
	}
	ub, err := api.Unwrap(s.client.AddBook(ctx, models.AddBookRequest{BookID: args[0], ReadingStatus: status, Progress: progress}))
	if err != nil {
		return err
	}
	return s.done("Added %q to your library as %s.", title(ub), ub.ReadingStatus)
}

func (s *Shell) updateShelf(ctx context.Context, bookID string, update models.StatusUpdate) error {
	ub, err := api.Unwrap(s.client.UpdateBookStatus(ctx, bookID, update))
	if err != nil {
		return err
	}
	return s.done("%q is now %s (%d%%).", title(ub), ub.ReadingStatus, ub.Progress)
}

// status changes the reading status. Without an explicit progress the stored
// one is kept, except that finishing a book moves it to 100%.
func (s *Shell) status(ctx context.Context, args []string) error {
	if err := need(args, 2, "status <bookId> <status> [progress]"); err != nil {
		return err
	}
	status, p, err := statusArgs(args[1:], models.ToRead)
	if err != nil {
		return err
	}
	update := models.StatusUpdate{ReadingStatus: status}
	if p != nil {
		update.Progress = *p
	} else {
		current, err := s.shelved(ctx, args[0])
		if err != nil {
			return err
		}
		update.Progress = current.Progress
		if status == models.Completed && current.ReadingStatus != models.Completed {
			update.Progress = 100
		}
	}
	return s.updateShelf(ctx, args[0], update)
}

// progress changes the percentage read and keeps the status.
func (s *Shell) progress(ctx context.Context, args []string) error {
	if err := need(args, 2, "progress <bookId> <percent>"); err != nil {
		return err
	}
	progress, err := parseProgress(args[1])
	if err != nil {
		return err
	}
	current, err := s.shelved(ctx, args[0])
	if err != nil {
		return err
	}
	return s.updateShelf(ctx, args[0], models.StatusUpdate{ReadingStatus: current.ReadingStatus, Progress: progress})
}

func (s *Shell) remove(ctx context.Context, args []string) error {
	if err := need(args, 1, "remove <bookId>"); err != nil {
		return err
	}
	if _, err := api.Unwrap(s.client.RemoveBook(ctx, args[0])); err != nil {
		return err
	}
	return s.done("Removed from your library.")
}

func (s *Shell) stats(ctx context.Context, _ []string) error {
	books, err := api.Unwrap(s.client.MyBooks(ctx))
	if err != nil {
		return err
	}
	return renderStats(s.out, models.SummarizeLibrary(books))
}

// Reviews

func (s *Shell) reviews(ctx context.Context, args []string) error {
	if err := need(args, 1, "reviews <bookId>"); err != nil {
		return err
	}
	reviews, err := api.Unwrap(s.client.BookReviews(ctx, args[0]))
	if err != nil {
		return err
	}
	return renderReviews(s.out, reviews)
}

func parseRating(v string) (int, error) {
	rating, err := parseInt("rating", v)
	if err != nil {
		return 0, err
	}
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return rating, nil
}

func (s *Shell) review(ctx context.Context, args []string) error {
	if err := need(args, 2, "review <bookId> <rating>"); err != nil {
		return err
	}
	rating, err := parseRating(args[1])
	if err != nil {
		return err
	}
	content, err := s.prompt.Text("Review: ")
	if err != nil {
		return err
	}
	r, err := api.Unwrap(s.client.CreateReview(ctx, models.ReviewRequest{BookID: args[0], Rating: rating, Content: content}))
	if err != nil {
		return err
	}
	return s.done("Review %s saved.", r.ID)
}

func (s *Shell) editReview(ctx context.Context, args []string) error {
	if err := need(args, 2, "edit-review <id> <rating>"); err != nil {
		return err
	}
	rating, err := parseRating(args[1])
	if err != nil {
		return err
	}
	content, err := s.prompt.Text("Review: ")
	if err != nil {
		return err
	}
	r, err := api.Unwrap(s.client.UpdateReview(ctx, args[0], models.ReviewUpdate{Rating: rating, Content: content}))
	if err != nil {
		return err
	}
	return s.done("Review %s updated.", r.ID)
}

func (s *Shell) deleteReview(ctx context.Context, args []string) error {
	if err := need(args, 1, "delete-review <id>"); err != nil {
		return err
	}
	if _, err := api.Unwrap(s.client.DeleteReview(ctx, args[0])); err != nil {
		return err
	}
	return s.done("Review deleted.")
}

// Blogs

func (s *Shell) blogs(ctx context.Context, args []string) error {
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	}
	blogs, err := api.Unwrap(s.client.Blogs(ctx, userID))
	if err != nil {
		return err
	}
	return renderBlogs(s.out, blogs)
}

func (s *Shell) blog(ctx context.Context, args []string) error {
	if err := need(args, 1, "blog <id>"); err != nil {
		return err
	}
	b, err := api.Unwrap(s.client.Blog(ctx, args[0]))
	if err != nil {
		return err
	}
	return renderBlog(s.out, b)
}

func (s *Shell) post(ctx context.Context, _ []string) error {
	var req models.BlogRequest
	var err error
	if req.Title, err = s.prompt.Line("Title: "); err != nil {
		return err
	}
	if req.Content, err = s.prompt.Text("Content: "); err != nil {
		return err
	}
	b, err := api.Unwrap(s.client.CreateBlog(ctx, req))
	if err != nil {
		return err
	}
	return s.done("Published %q (%s).", b.Title, b.ID)
}

func (s *Shell) editBlog(ctx context.Context, args []string) error {
	if err := need(args, 1, "edit-blog <id>"); err != nil {
		return err
	}
	current, err := api.Unwrap(s.client.Blog(ctx, args[0]))
	if err != nil {
		return err
	}
	req := models.BlogRequest{}
	if req.Title, err = s.prompt.Default("Title", current.Title); err != nil {
		return err
	}
	if req.Content, err = s.prompt.Text("Content (leave empty to keep): "); err != nil {
		return err
	}
	if req.Content == "" {
		req.Content = current.Content
	}
	b, err := api.Unwrap(s.client.UpdateBlog(ctx, current.ID, req))
	if err != nil {
		return err
	}
	return s.done("Updated %q.", b.Title)
}

func (s *Shell) deleteBlog(ctx context.Context, args []string) error {
	if err := need(args, 1, "delete-blog <id>"); err != nil {
		return err
	}
	if _, err := api.Unwrap(s.client.DeleteBlog(ctx, args[0])); err != nil {
		return err
	}
	return s.done("Post deleted.")
}

func (s *Shell) like(ctx context.Context, args []string) error {
	if err := need(args, 1, "like <blogId>"); err != nil {
		return err
	}
	if _, err := api.Unwrap(s.client.LikeBlog(ctx, args[0])); err != nil {
		return err
	}
	return s.done("Liked.")
}

func (s *Shell) unlike(ctx context.Context, args []string) error {
	if err := need(args, 1, "unlike <blogId>"); err != nil {
		return err
	}
	if _, err := api.Unwrap(s.client.UnlikeBlog(ctx, args[0])); err != nil {
		return err
	}
	return s.done("Like removed.")
}

// Profiles

func (s *Shell) profile(ctx context.Context, _ []string) error {
	u, err := api.Unwrap(s.client.MyProfile(ctx))
	if err != nil {
		return err
	}
	return renderProfile(s.out, models.PublicProfile{
		ID: u.ID, FullName: u.FullName, Username: u.Username, Bio: u.Bio, AvatarURL: u.AvatarURL,
	}, u.Email)
}

func (s *Shell) updateProfile(ctx context.Context, _ []string) error {
	current, _ := s.sess.User()
	var req models.ProfileUpdate
	var err error
	if req.FullName, err = s.prompt.Default("Full name", current.FullName); err != nil {
		return err
	}
	if req.Username, err = s.prompt.Default("Username", current.Username); err != nil {
		return err
	}
	if req.Bio, err = s.prompt.Default("Bio", current.Bio); err != nil {
		return err
	}
	if req.AvatarURL, err = s.prompt.Default("Avatar URL", current.AvatarURL); err != nil {
		return err
	}

	u, err := api.Unwrap(s.client.UpdateProfile(ctx, req))
	if err != nil {
		return err
	}
	s.sess.UpdateUser(models.UserPatch{
		FullName:  &u.FullName,
		Username:  &u.Username,
		Bio:       &u.Bio,
		AvatarURL: &u.AvatarURL,
		UpdatedAt: &u.UpdatedAt,
	})
	return s.done("Profile updated.")
}

func (s *Shell) user(ctx context.Context, args []string) error {
	if err := need(args, 1, "user <username>"); err != nil {
		return err
	}
	p, err := api.Unwrap(s.client.PublicProfile(ctx, args[0]))
	if err != nil {
		return err
	}
	if err := renderProfile(s.out, p, ""); err != nil {
		return err
	}
	blogs, err := api.Unwrap(s.client.BlogsByUser(ctx, p.ID))
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	return renderBlogs(s.out, blogs)
}
