// Package service provides the stub backend's authentication logic:
// password hashing, access-token issuing and verification, and profile
// updates. Persistence is delegated to a UserRepository.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/taletrail/internal/models"
	"github.com/atinyakov/taletrail/internal/repository"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned by ParseToken for any token it cannot
	// vouch for.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// Create stores a new account, failing with repository.ErrConflict when
	// the email or username is taken.
	Create(ctx context.Context, u repository.UserRecord) error
	ByID(ctx context.Context, id string) (repository.UserRecord, error)
	ByEmail(ctx context.Context, email string) (repository.UserRecord, error)
	ByUsername(ctx context.Context, username string) (repository.UserRecord, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate, updatedAt string) (models.User, error)
}

// AuthService implements signup, login and profile operations.
type AuthService struct {
	repo   UserRepository
	secret []byte
	ttl    time.Duration

	// Now is the clock used for token issuing.
	Now func() time.Time
}

// NewAuthService constructs a service signing HS256 tokens with secret that
// stay valid for ttl.
func NewAuthService(repo UserRepository, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, ttl: ttl, Now: time.Now}
}

// Signup creates an account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthPayload, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Now().UTC().Format(time.RFC3339)
	rec := repository.UserRecord{
		User: models.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			FullName:  req.FullName,
			Username:  req.Username,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return models.AuthPayload{}, err
	}
	return s.issue(rec.User)
}

// Login checks the password of the account registered under email.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.AuthPayload, error) {
	rec, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.AuthPayload{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthPayload{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return models.AuthPayload{}, ErrInvalidCredentials
	}
	return s.issue(rec.User)
}

func (s *AuthService) issue(u models.User) (models.AuthPayload, error) {
	now := s.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("sign token: %w", err)
	}
	return models.AuthPayload{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		User:         u,
	}, nil
}

// ParseToken verifies an access token and returns the user id it was
// issued to.
func (s *AuthService) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Profile returns the account of user id.
func (s *AuthService) Profile(ctx context.Context, id string) (models.User, error) {
	rec, err := s.repo.ByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return rec.User, nil
}

// UpdateProfile replaces the editable fields of user id.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (models.User, error) {
	return s.repo.UpdateProfile(ctx, id, p, s.Now().UTC().Format(time.RFC3339))
}

// PublicProfile looks a user up by username.
func (s *AuthService) PublicProfile(ctx context.Context, username string) (models.PublicProfile, error) {
	rec, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		return models.PublicProfile{}, err
	}
	return models.PublicProfile{
		ID:        rec.ID,
		FullName:  rec.FullName,
		Username:  rec.Username,
		Bio:       rec.Bio,
		AvatarURL: rec.AvatarURL,
	}, nil
}
