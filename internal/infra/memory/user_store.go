package memory

import (
	"context"
	"sync"

	"trivia-quiz/internal/domain"
)

// UserStore keeps users in insertion order in memory.
type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserStore(users ...domain.User) *UserStore {
	return &UserStore{users: append([]domain.User(nil), users...)}
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...), nil
}

func (s *UserStore) Get(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *UserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUser
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *UserStore) AddPoints(_ context.Context, username string, points int) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == username {
			if points > 0 {
				s.users[i].Points += points
			}
			return s.users[i], nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}
