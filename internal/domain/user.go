package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create inserts a new user and returns its id.
	// Returns ErrEmailExists when the email is already registered.
	Create(ctx context.Context, email, passwordHash, role string) (uuid.UUID, error)

	// FindByEmail returns ErrUserNotFound when no user carries the email.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PasswordHasher abstracts the password hashing collaborator.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}
