// Package models defines the TaleTrail wire types shared by the client and
// the stub backend: catalog records, library entries, reviews, blogs and
// user profiles.
package models

// User is the authenticated account as returned by the profile and auth
// endpoints.
type User struct {
	// ID is the server-assigned identifier.
	ID string `json:"id" validate:"required"`
	// Email is the login address.
	Email string `json:"email"`
	// FullName is the display name.
	FullName string `json:"fullName"`
	// Username is the public handle used in profile URLs.
	Username string `json:"username" validate:"required"`
	// Bio is optional free text.
	Bio string `json:"bio,omitempty"`
	// AvatarURL points at the profile picture.
	AvatarURL string `json:"avatarUrl,omitempty"`
	// CreatedAt and UpdatedAt are ISO-8601 timestamps.
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UserPatch carries a partial update for the session user. Nil fields are
// left untouched.
type UserPatch struct {
	Email     *string
	FullName  *string
	Username  *string
	Bio       *string
	AvatarURL *string
	UpdatedAt *string
}

// Apply merges the non-nil fields of p into u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
}

// PublicProfile is the subset of a user visible to everyone.
type PublicProfile struct {
	ID        string `json:"id" validate:"required"`
	FullName  string `json:"fullName"`
	Username  string `json:"username" validate:"required"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Author is a catalog author.
type Author struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Bio       string `json:"bio,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	DeathDate string `json:"deathDate,omitempty"`
	BookCount int    `json:"bookCount" validate:"gte=0"`
}

// Publisher is a catalog publisher.
type Publisher struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	FoundedYear int    `json:"foundedYear,omitempty"`
	BookCount   int    `json:"bookCount" validate:"gte=0"`
}

// Book is a catalog entry with its authors embedded.
type Book struct {
	ID              string   `json:"id" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description,omitempty"`
	Language        string   `json:"language,omitempty"`
	CoverImageURL   string   `json:"coverImageUrl,omitempty"`
	PublicationYear int      `json:"publicationYear,omitempty"`
	PublisherID     string   `json:"publisherId,omitempty"`
	PublisherName   string   `json:"publisherName,omitempty"`
	Authors         []Author `json:"authors" validate:"dive"`
}

// UserBook is a book on the current user's shelf.
type UserBook struct {
	ID            string        `json:"id" validate:"required"`
	BookID        string        `json:"bookId" validate:"required"`
	BookTitle     string        `json:"bookTitle"`
	BookCoverURL  string        `json:"bookCoverUrl,omitempty"`
	ReadingStatus ReadingStatus `json:"readingStatus" validate:"gte=0,lte=3"`
	// Progress is a percentage in [0, 100].
	Progress    int    `json:"progress" validate:"gte=0,lte=100"`
	StartedAt   string `json:"startedAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	AddedAt     string `json:"addedAt,omitempty"`
}

// Review is a user's rating and comment on a book.
type Review struct {
	ID        string `json:"id" validate:"required"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	BookID    string `json:"bookId" validate:"required"`
	BookTitle string `json:"bookTitle"`
	Rating    int    `json:"rating" validate:"gte=0,lte=5"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Blog is a user-authored post.
type Blog struct {
	ID                   string `json:"id" validate:"required"`
	UserID               string `json:"userId"`
	Username             string `json:"username"`
	Title                string `json:"title"`
	Content              string `json:"content"`
	LikeCount            int    `json:"likeCount" validate:"gte=0"`
	IsLikedByCurrentUser bool   `json:"isLikedByCurrentUser"`
	CreatedAt            string `json:"createdAt,omitempty"`
	UpdatedAt            string `json:"updatedAt,omitempty"`
}

// AuthPayload is the data returned by login and signup.
type AuthPayload struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Empty is the payload type of endpoints that return no data.
type Empty struct{}
