package repository

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/taletrail/internal/models"
)

type bookRecord struct {
	models.Book
	AuthorIDs []string
}

// Store is the stub backend's in-memory catalog and social data. Records
// keep insertion order so listings are stable.
type Store struct {
	// Now stamps created and updated records.
	Now func() time.Time

	mu         sync.RWMutex
	authors    []models.Author
	publishers []models.Publisher
	books      []bookRecord
	library    map[string][]models.UserBook
	reviews    []models.Review
	blogs      []models.Blog
	likes      map[string]map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		Now:     time.Now,
		library: make(map[string][]models.UserBook),
		likes:   make(map[string]map[string]struct{}),
	}
}

func (s *Store) stamp() string {
	return s.Now().UTC().Format(time.RFC3339)
}

// AddAuthor, AddPublisher and AddBook populate the catalog.
func (s *Store) AddAuthor(a models.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors = append(s.authors, a)
}

func (s *Store) AddPublisher(p models.Publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishers = append(s.publishers, p)
}

func (s *Store) AddBook(b models.Book, authorIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Authors = nil
	s.books = append(s.books, bookRecord{Book: b, AuthorIDs: authorIDs})
}

// Books lists the catalog. A non-empty search keeps books whose title or
// author name contains it, ignoring case.
func (s *Store) Books(search string) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search = strings.ToLower(strings.TrimSpace(search))
	out := []models.Book{}
	for _, rec := range s.books {
		b := s.bookView(rec)
		if search == "" || matches(b, search) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b models.Book, search string) bool {
	if strings.Contains(strings.ToLower(b.Title), search) {
		return true
	}
	for _, a := range b.Authors {
		if strings.Contains(strings.ToLower(a.Name), search) {
			return true
		}
	}
	return false
}

func (s *Store) Book(id string) (models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.book(id)
	if !ok {
		return models.Book{}, ErrNotFound
	}
	return s.bookView(rec), nil
}

func (s *Store) BooksByAuthor(authorID string) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.author(authorID); !ok {
		return nil, ErrNotFound
	}
	out := []models.Book{}
	for _, rec := range s.books {
		if slices.Contains(rec.AuthorIDs, authorID) {
			out = append(out, s.bookView(rec))
		}
	}
	return out, nil
}

func (s *Store) Authors() []models.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, s.authorView(a))
	}
	return out
}

func (s *Store) Author(id string) (models.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.author(id)
	if !ok {
		return models.Author{}, ErrNotFound
	}
	return s.authorView(a), nil
}

func (s *Store) Publishers() []models.Publisher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Publisher, 0, len(s.publishers))
	for _, p := range s.publishers {
		out = append(out, s.publisherView(p))
	}
	return out
}

func (s *Store) Publisher(id string) (models.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.publishers {
		if p.ID == id {
			return s.publisherView(p), nil
		}
	}
	return models.Publisher{}, ErrNotFound
}

func (s *Store) book(id string) (bookRecord, bool) {
	for _, rec := range s.books {
		if rec.ID == id {
			return rec, true
		}
	}
	return bookRecord{}, false
}

func (s *Store) author(id string) (models.Author, bool) {
	for _, a := range s.authors {
		if a.ID == id {
			return a, true
		}
	}
	return models.Author{}, false
}

func (s *Store) bookView(rec bookRecord) models.Book {
	b := rec.Book
	b.Authors = []models.Author{}
	for _, id := range rec.AuthorIDs {
		if a, ok := s.author(id); ok {
			b.Authors = append(b.Authors, s.authorView(a))
		}
	}
	for _, p := range s.publishers {
		if p.ID == b.PublisherID {
			b.PublisherName = p.Name
		}
	}
	return b
}

func (s *Store) authorView(a models.Author) models.Author {
	a.BookCount = 0
	for _, rec := range s.books {
		if slices.Contains(rec.AuthorIDs, a.ID) {
			a.BookCount++
		}
	}
	return a
}

func (s *Store) publisherView(p models.Publisher) models.Publisher {
	p.BookCount = 0
	for _, rec := range s.books {
		if rec.PublisherID == p.ID {
			p.BookCount++
		}
	}
	return p
}

// Library lists the shelf of userID in the order books were added.
func (s *Store) Library(userID string) []models.UserBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.UserBook{}, s.library[userID]...)
}

// AddToLibrary shelves a catalog book. It returns ErrNotFound for an
// unknown book and ErrConflict when the book is already shelved.
func (s *Store) AddToLibrary(userID string, req models.AddBookRequest) (models.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.book(req.BookID)
	if !ok {
		return models.UserBook{}, ErrNotFound
	}
	if s.shelved(userID, req.BookID) >= 0 {
		return models.UserBook{}, ErrConflict
	}

	now := s.stamp()
	ub := models.UserBook{
		ID:           uuid.NewString(),
		BookID:       rec.ID,
		BookTitle:    rec.Title,
		BookCoverURL: rec.CoverImageURL,
		AddedAt:      now,
	}
	applyStatus(&ub, req.ReadingStatus, req.Progress, now)
	s.library[userID] = append(s.library[userID], ub)
	return ub, nil
}

// UpdateLibrary changes status and progress of a shelved book.
func (s *Store) UpdateLibrary(userID, bookID string, u models.StatusUpdate) (models.UserBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.shelved(userID, bookID)
	if i < 0 {
		return models.UserBook{}, ErrNotFound
	}
	ub := &s.library[userID][i]
	applyStatus(ub, u.ReadingStatus, u.Progress, s.stamp())
	return *ub, nil
}

func (s *Store) RemoveFromLibrary(userID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.shelved(userID, bookID)
	if i < 0 {
		return ErrNotFound
	}
	s.library[userID] = slices.Delete(s.library[userID], i, i+1)
	return nil
}

func (s *Store) shelved(userID, bookID string) int {
	return slices.IndexFunc(s.library[userID], func(ub models.UserBook) bool { return ub.BookID == bookID })
}

// applyStatus records when reading started and finished. StartedAt is kept
// once set; CompletedAt only holds while the book is Completed.
func applyStatus(ub *models.UserBook, status models.ReadingStatus, progress int, now string) {
	ub.ReadingStatus = status
	ub.Progress = progress
	if status != models.ToRead && ub.StartedAt == "" {
		ub.StartedAt = now
	}
	switch {
	case status != models.Completed:
		ub.CompletedAt = ""
	case ub.CompletedAt == "":
		ub.CompletedAt = now
	}
}

// Reviews lists the reviews of a book, oldest first.
func (s *Store) Reviews(bookID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.book(bookID); !ok {
		return nil, ErrNotFound
	}
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

// CreateReview adds author's review. One review per user and book.
func (s *Store) CreateReview(author models.User, req models.ReviewRequest) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.book(req.BookID)
	if !ok {
		return models.Review{}, ErrNotFound
	}
	for _, r := range s.reviews {
		if r.BookID == req.BookID && r.UserID == author.ID {
			return models.Review{}, ErrConflict
		}
	}
	r := models.Review{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		BookID:    rec.ID,
		BookTitle: rec.Title,
		Rating:    req.Rating,
		Content:   req.Content,
		CreatedAt: s.stamp(),
	}
	s.reviews = append(s.reviews, r)
	return r, nil
}

func (s *Store) UpdateReview(userID, id string, u models.ReviewUpdate) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.ownedReview(userID, id)
	if err != nil {
		return models.Review{}, err
	}
	s.reviews[i].Rating = u.Rating
	s.reviews[i].Content = u.Content
	return s.reviews[i], nil
}

func (s *Store) DeleteReview(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.ownedReview(userID, id)
	if err != nil {
		return err
	}
	s.reviews = slices.Delete(s.reviews, i, i+1)
	return nil
}

func (s *Store) ownedReview(userID, id string) (int, error) {
	i := slices.IndexFunc(s.reviews, func(r models.Review) bool { return r.ID == id })
	if i < 0 {
		return -1, ErrNotFound
	}
	if s.reviews[i].UserID != userID {
		return -1, ErrForbidden
	}
	return i, nil
}

// Blogs lists posts newest first, optionally only those of authorID.
// viewerID, when set, fills IsLikedByCurrentUser.
func (s *Store) Blogs(authorID, viewerID string) []models.Blog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Blog{}
	for i := len(s.blogs) - 1; i >= 0; i-- {
		b := s.blogs[i]
		if authorID == "" || b.UserID == authorID {
			out = append(out, s.blogView(b, viewerID))
		}
	}
	return out
}

func (s *Store) Blog(id, viewerID string) (models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.blogIndex(id)
	if i < 0 {
		return models.Blog{}, ErrNotFound
	}
	return s.blogView(s.blogs[i], viewerID), nil
}

func (s *Store) CreateBlog(author models.User, req models.BlogRequest) models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.stamp()
	b := models.Blog{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.blogs = append(s.blogs, b)
	return b
}

func (s *Store) UpdateBlog(userID, id string, req models.BlogRequest) (models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.ownedBlog(userID, id)
	if err != nil {
		return models.Blog{}, err
	}
	s.blogs[i].Title = req.Title
	s.blogs[i].Content = req.Content
	s.blogs[i].UpdatedAt = s.stamp()
	return s.blogView(s.blogs[i], userID), nil
}

func (s *Store) DeleteBlog(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.ownedBlog(userID, id)
	if err != nil {
		return err
	}
	s.blogs = slices.Delete(s.blogs, i, i+1)
	delete(s.likes, id)
	return nil
}

// Like and Unlike are idempotent.
func (s *Store) Like(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blogIndex(id) < 0 {
		return ErrNotFound
	}
	if s.likes[id] == nil {
		s.likes[id] = make(map[string]struct{})
	}
	s.likes[id][userID] = struct{}{}
	return nil
}

func (s *Store) Unlike(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blogIndex(id) < 0 {
		return ErrNotFound
	}
	delete(s.likes[id], userID)
	return nil
}

func (s *Store) blogIndex(id string) int {
	return slices.IndexFunc(s.blogs, func(b models.Blog) bool { return b.ID == id })
}

func (s *Store) ownedBlog(userID, id string) (int, error) {
	i := s.blogIndex(id)
	if i < 0 {
		return -1, ErrNotFound
	}
	if s.blogs[i].UserID != userID {
		return -1, ErrForbidden
	}
	return i, nil
}

func (s *Store) blogView(b models.Blog, viewerID string) models.Blog {
	b.LikeCount = len(s.likes[b.ID])
	if viewerID != "" {
		_, b.IsLikedByCurrentUser = s.likes[b.ID][viewerID]
	}
	return b
}
