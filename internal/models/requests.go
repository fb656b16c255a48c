package models

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddBookRequest is the body of POST /userbook.
type AddBookRequest struct {
	BookID        string        `json:"bookId" validate:"required"`
	ReadingStatus ReadingStatus `json:"readingStatus" validate:"gte=0,lte=3"`
	Progress      int           `json:"progress" validate:"gte=0,lte=100"`
}

// StatusUpdate is the body of PUT /userbook/{bookId}.
type StatusUpdate struct {
	ReadingStatus ReadingStatus `json:"readingStatus" validate:"gte=0,lte=3"`
	Progress      int           `json:"progress" validate:"gte=0,lte=100"`
}

// ReviewRequest is the body of POST /review.
type ReviewRequest struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Content string `json:"content" validate:"required"`
}

// ReviewUpdate is the body of PUT /review/{id}.
type ReviewUpdate struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Content string `json:"content" validate:"required"`
}

// BlogRequest is the body of POST /blog and PUT /blog/{id}.
type BlogRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// ProfileUpdate is the body of PUT /user/profile.
type ProfileUpdate struct {
	FullName  string `json:"fullName" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
