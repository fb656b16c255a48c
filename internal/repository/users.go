// Package repository provides the stub backend's persistence: users in
// memory or PostgreSQL, and the seeded in-memory catalog with libraries,
// reviews and blogs.
package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/atinyakov/taletrail/internal/models"
)

// UserRecord is a stored account.
type UserRecord struct {
	models.User
	PasswordHash string
}

// MemoryUserRepository keeps accounts in a map. Email and username are
// unique, compared case-insensitively.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]UserRecord
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]UserRecord)}
}

// Create stores u. It returns ErrConflict when the email or username is
// taken.
func (r *MemoryUserRepository) Create(_ context.Context, u UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return ErrConflict
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) ByID(_ context.Context, id string) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return UserRecord{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) ByEmail(_ context.Context, email string) (UserRecord, error) {
	return r.find(func(u UserRecord) bool { return strings.EqualFold(u.Email, email) })
}

func (r *MemoryUserRepository) ByUsername(_ context.Context, username string) (UserRecord, error) {
	return r.find(func(u UserRecord) bool { return strings.EqualFold(u.Username, username) })
}

func (r *MemoryUserRepository) find(match func(UserRecord) bool) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return UserRecord{}, ErrNotFound
}

// UpdateProfile replaces the editable profile fields of user id.
func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id string, p models.ProfileUpdate, updatedAt string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && strings.EqualFold(other.Username, p.Username) {
			return models.User{}, ErrConflict
		}
	}
	u.FullName = p.FullName
	u.Username = p.Username
	u.Bio = p.Bio
	u.AvatarURL = p.AvatarURL
	u.UpdatedAt = updatedAt
	r.users[id] = u
	return u.User, nil
}
