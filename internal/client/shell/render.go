package shell

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/atinyakov/taletrail/internal/models"
)

const excerptLen = 60

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= excerptLen {
		return s
	}
	r := []rune(s)
	return string(r[:excerptLen-3]) + "..."
}

func authorNames(authors []models.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}

func title(ub models.UserBook) string {
	if ub.BookTitle != "" {
		return ub.BookTitle
	}
	return ub.BookID
}

func renderBooks(w io.Writer, books []models.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHORS\tYEAR")
	for _, b := range books {
		year := ""
		if b.PublicationYear != 0 {
			year = fmt.Sprint(b.PublicationYear)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, authorNames(b.Authors), year)
	}
	return tw.Flush()
}

func renderBook(w io.Writer, b models.Book) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Title:\t%s\n", b.Title)
	fmt.Fprintf(tw, "By:\t%s\n", authorNames(b.Authors))
	if b.PublisherName != "" {
		fmt.Fprintf(tw, "Publisher:\t%s\n", b.PublisherName)
	}
	if b.PublicationYear != 0 {
		fmt.Fprintf(tw, "Published:\t%d\n", b.PublicationYear)
	}
	if b.Language != "" {
		fmt.Fprintf(tw, "Language:\t%s\n", b.Language)
	}
	if b.Description != "" {
		fmt.Fprintf(tw, "\t%s\n", excerpt(b.Description))
	}
	return tw.Flush()
}

func renderAuthors(w io.Writer, authors []models.Author) error {
	if len(authors) == 0 {
		_, err := fmt.Fprintln(w, "No authors found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tBOOKS")
	for _, a := range authors {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", a.ID, a.Name, a.BookCount)
	}
	return tw.Flush()
}

func renderPublishers(w io.Writer, publishers []models.Publisher) error {
	if len(publishers) == 0 {
		_, err := fmt.Fprintln(w, "No publishers found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tBOOKS")
	for _, p := range publishers {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.ID, p.Name, p.BookCount)
	}
	return tw.Flush()
}

func renderLibrary(w io.Writer, books []models.UserBook) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "Your library is empty.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "BOOK\tTITLE\tSTATUS\tPROGRESS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\n", b.BookID, b.BookTitle, b.ReadingStatus, b.Progress)
	}
	return tw.Flush()
}

func renderStats(w io.Writer, s models.LibraryStats) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total:\t%d\n", s.Total)
	fmt.Fprintf(tw, "%s:\t%d\n", models.ToRead, s.ToRead)
	fmt.Fprintf(tw, "%s:\t%d\n", models.Reading, s.Reading)
	fmt.Fprintf(tw, "%s:\t%d\n", models.Completed, s.Completed)
	fmt.Fprintf(tw, "%s:\t%d\n", models.Dropped, s.Dropped)
	fmt.Fprintf(tw, "Average progress:\t%d%%\n", s.AverageProgress)
	return tw.Flush()
}

func renderReviews(w io.Writer, reviews []models.Review) error {
	if len(reviews) == 0 {
		_, err := fmt.Fprintln(w, "No reviews yet.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSER\tRATING\tREVIEW")
	for _, r := range reviews {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Username, stars(r.Rating), excerpt(r.Content))
	}
	return tw.Flush()
}

func renderBlogs(w io.Writer, blogs []models.Blog) error {
	if len(blogs) == 0 {
		_, err := fmt.Fprintln(w, "No posts yet.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAUTHOR\tTITLE\tLIKES")
	for _, b := range blogs {
		likes := fmt.Sprint(b.LikeCount)
		if b.IsLikedByCurrentUser {
			likes += " (you)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Username, b.Title, likes)
	}
	return tw.Flush()
}

func renderBlog(w io.Writer, b models.Blog) error {
	liked := ""
	if b.IsLikedByCurrentUser {
		liked = ", including you"
	}
	_, err := fmt.Fprintf(w, "%s\nby @%s, %d likes%s\n\n%s\n", b.Title, b.Username, b.LikeCount, liked, b.Content)
	return err
}

func renderProfile(w io.Writer, p models.PublicProfile, email string) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", p.FullName)
	fmt.Fprintf(tw, "Username:\t@%s\n", p.Username)
	if email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", email)
	}
	if p.Bio != "" {
		fmt.Fprintf(tw, "Bio:\t%s\n", p.Bio)
	}
	if p.AvatarURL != "" {
		fmt.Fprintf(tw, "Avatar:\t%s\n", p.AvatarURL)
	}
	return tw.Flush()
}
