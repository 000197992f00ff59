package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"trivia-quiz/internal/domain"
)

// UserRepository abstracts the user store (JSON file, Postgres, memory).
// Implementations return domain.ErrStoreUnavailable when the backing store
// cannot be read or written.
type UserRepository interface {
	// List returns every user in store order.
	List(ctx context.Context) ([]domain.User, error)
	// Get returns domain.ErrNotFound when no user has that exact username.
	Get(ctx context.Context, username string) (domain.User, error)
	// Create returns domain.ErrDuplicateUser when the username is taken.
	Create(ctx context.Context, user domain.User) error
	// AddPoints credits points to a user and returns the updated record.
	AddPoints(ctx context.Context, username string, points int) (domain.User, error)
}

// AuthService implements login and signup.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
}

func NewAuthService(users UserRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Login returns the user whose username and password match exactly.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, domain.Invalid("Please enter both username and password")
	}

	user, err := s.users.Get(ctx, username)
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Printf("login %s: %v", username, err)
		return domain.User{}, domain.ErrNotFound
	case err != nil:
		return domain.User{}, err
	}
	if !s.hasher.Compare(user.Password, password) {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

// Signup registers a new user with zero points.
func (s *AuthService) Signup(ctx context.Context, username, password, confirm string) (domain.User, error) {
	if username == "" || password == "" || confirm == "" {
		return domain.User{}, domain.Invalid("Please fill in all fields")
	}
	if password != confirm {
		return domain.User{}, domain.Invalid("Passwords do not match")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, Password: hash, Points: 0}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
